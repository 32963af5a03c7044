package domain

// Transmission values accepted by the rental API.
const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
)

// Fuel type values accepted by the rental API.
const (
	FuelGasoline = "Gasoline"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

// Car is a vehicle in the rental catalog. Cars are created, edited, and
// deleted only through the admin console; everywhere else they are read-only.
// Price is the rental price per day.
type Car struct {
	ID           string  `json:"_id"`
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

// CarSummary is the embedded car reference rendered on a booking row. The
// pointer may be nil when the server failed to resolve the reference.
type CarSummary struct {
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	ModelName string  `json:"modelName"`
	Price     float64 `json:"price"`
}
