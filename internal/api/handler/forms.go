package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/velocar/rental-portal/internal/core/ports"
)

// carForm is the raw admin car form: every field arrives as text. Numeric
// fields are coerced explicitly in coerce(); a non-numeric entry is rejected
// outright rather than submitted as a zero or a string masquerading as a
// number.
type carForm struct {
	Name         string `form:"name"`
	Brand        string `form:"brand"`
	ModelName    string `form:"modelName"`
	Year         string `form:"year"`
	Price        string `form:"price"`
	Transmission string `form:"transmission"`
	FuelType     string `form:"fuelType"`
	Seats        string `form:"seats"`
	Mileage      string `form:"mileage"`
	Image        string `form:"image"`
	Available    string `form:"available"`
}

// carFields is the coerced form, carrying the validation contract for the
// full editable field set.
type carFields struct {
	Name         string  `validate:"required"`
	Brand        string  `validate:"required"`
	ModelName    string  `validate:"required"`
	Year         int     `validate:"required,gte=1950,lte=2100"`
	Price        float64 `validate:"required,gt=0"`
	Transmission string  `validate:"required,oneof=Automatic Manual"`
	FuelType     string  `validate:"required,oneof=Gasoline Diesel Electric Hybrid"`
	Seats        int     `validate:"required,gte=1,lte=12"`
	Mileage      int     `validate:"gte=0"`
	Image        string  `validate:"required"`
	Available    bool
}

// coerce converts the text fields to their numeric types. All bad fields are
// reported together so the admin fixes the form in one pass.
func (f carForm) coerce() (carFields, error) {
	var bad []string

	year, err := strconv.Atoi(strings.TrimSpace(f.Year))
	if err != nil {
		bad = append(bad, "year must be a number")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		bad = append(bad, "price must be a number")
	}
	seats, err := strconv.Atoi(strings.TrimSpace(f.Seats))
	if err != nil {
		bad = append(bad, "seats must be a number")
	}
	mileage, err := strconv.Atoi(strings.TrimSpace(f.Mileage))
	if err != nil {
		bad = append(bad, "mileage must be a number")
	}

	if len(bad) > 0 {
		return carFields{}, errors.New(strings.Join(bad, "; "))
	}

	return carFields{
		Name:         strings.TrimSpace(f.Name),
		Brand:        strings.TrimSpace(f.Brand),
		ModelName:    strings.TrimSpace(f.ModelName),
		Year:         year,
		Price:        price,
		Transmission: f.Transmission,
		FuelType:     f.FuelType,
		Seats:        seats,
		Mileage:      mileage,
		Image:        strings.TrimSpace(f.Image),
		Available:    f.Available == "on" || f.Available == "true",
	}, nil
}

func (f carFields) toInput() ports.CarInput {
	return ports.CarInput{
		Name:         f.Name,
		Brand:        f.Brand,
		ModelName:    f.ModelName,
		Year:         f.Year,
		Price:        f.Price,
		Transmission: f.Transmission,
		FuelType:     f.FuelType,
		Seats:        f.Seats,
		Mileage:      f.Mileage,
		Image:        f.Image,
		Available:    f.Available,
	}
}
