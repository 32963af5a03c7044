package handler

import (
	"strings"
	"testing"
)

func validCarForm() carForm {
	return carForm{
		Name:         "Corolla Touring",
		Brand:        "Toyota",
		ModelName:    "Corolla",
		Year:         "2021",
		Price:        "89.50",
		Transmission: "Automatic",
		FuelType:     "Hybrid",
		Seats:        "5",
		Mileage:      "42000",
		Image:        "https://img.example/corolla.jpg",
		Available:    "on",
	}
}

func TestCarFormCoerce(t *testing.T) {
	fields, err := validCarForm().coerce()
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}

	if fields.Year != 2021 {
		t.Errorf("Year = %d, want 2021", fields.Year)
	}
	if fields.Price != 89.50 {
		t.Errorf("Price = %v, want 89.50", fields.Price)
	}
	if fields.Seats != 5 {
		t.Errorf("Seats = %d, want 5", fields.Seats)
	}
	if fields.Mileage != 42000 {
		t.Errorf("Mileage = %d, want 42000", fields.Mileage)
	}
	if !fields.Available {
		t.Error("Available = false, want true")
	}
}

func TestCarFormCoerceTrimsWhitespace(t *testing.T) {
	form := validCarForm()
	form.Year = " 2021 "
	form.Name = "  Corolla Touring "

	fields, err := form.coerce()
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if fields.Year != 2021 {
		t.Errorf("Year = %d, want 2021", fields.Year)
	}
	if fields.Name != "Corolla Touring" {
		t.Errorf("Name = %q, want trimmed", fields.Name)
	}
}

func TestCarFormCoerceRejectsNonNumeric(t *testing.T) {
	form := validCarForm()
	form.Year = "twenty twenty-one"
	form.Price = "cheap"

	_, err := form.coerce()
	if err == nil {
		t.Fatal("expected coercion error")
	}
	if !strings.Contains(err.Error(), "year must be a number") {
		t.Errorf("error %q missing year complaint", err)
	}
	if !strings.Contains(err.Error(), "price must be a number") {
		t.Errorf("error %q missing price complaint", err)
	}
}

func TestCarFormCoerceUncheckedCheckbox(t *testing.T) {
	form := validCarForm()
	form.Available = ""

	fields, err := form.coerce()
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if fields.Available {
		t.Error("Available = true for unchecked box")
	}
}
