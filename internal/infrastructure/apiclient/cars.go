package apiclient

import (
	"context"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

type carPayload struct {
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	ModelName    string  `json:"modelName"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Seats        int     `json:"seats"`
	Mileage      int     `json:"mileage"`
	Image        string  `json:"image"`
	Available    bool    `json:"available"`
}

func toCarPayload(in ports.CarInput) carPayload {
	return carPayload{
		Name:         in.Name,
		Brand:        in.Brand,
		ModelName:    in.ModelName,
		Year:         in.Year,
		Price:        in.Price,
		Transmission: in.Transmission,
		FuelType:     in.FuelType,
		Seats:        in.Seats,
		Mileage:      in.Mileage,
		Image:        in.Image,
		Available:    in.Available,
	}
}

// ListCars fetches the full catalog.
func (c *Client) ListCars(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	if err := c.get(ctx, "/cars", "cars_list", &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCar fetches a single car by id.
func (c *Client) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	var car domain.Car
	if err := c.get(ctx, "/cars/"+id, "cars_get", &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CreateCar submits the full editable field set for a new catalog entry.
func (c *Client) CreateCar(ctx context.Context, in ports.CarInput) (*domain.Car, error) {
	var car domain.Car
	if err := c.post(ctx, "/cars", "cars_create", toCarPayload(in), &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// UpdateCar replaces the editable fields of an existing catalog entry.
func (c *Client) UpdateCar(ctx context.Context, id string, in ports.CarInput) (*domain.Car, error) {
	var car domain.Car
	if err := c.put(ctx, "/cars/"+id, "cars_update", toCarPayload(in), &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// DeleteCar removes a catalog entry.
func (c *Client) DeleteCar(ctx context.Context, id string) error {
	return c.delete(ctx, "/cars/"+id, "cars_delete")
}
