package ports

import (
	"context"

	"github.com/velocar/rental-portal/internal/core/domain"
)

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// ProfileUpdateInput carries the editable profile fields. ImageData is the
// raw upload; empty means no new profile image.
type ProfileUpdateInput struct {
	FirstName     string
	LastName      string
	Phone         string
	ImageFilename string
	ImageData     []byte
}

// AuthGateway wraps the remote auth endpoints. Login and Register return the
// opaque bearer token together with the identity record; UpdateProfile
// requires a token in the request context.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, *domain.UserSummary, error)
	Register(ctx context.Context, in RegisterInput) (string, *domain.UserSummary, error)
	UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*domain.UserSummary, error)
}

// CarInput is the full editable field set submitted on create and update.
type CarInput struct {
	Name         string
	Brand        string
	ModelName    string
	Year         int
	Price        float64
	Transmission string
	FuelType     string
	Seats        int
	Mileage      int
	Image        string
	Available    bool
}

// CarGateway wraps the remote car CRUD endpoints.
type CarGateway interface {
	ListCars(ctx context.Context) ([]domain.Car, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	CreateCar(ctx context.Context, in CarInput) (*domain.Car, error)
	UpdateCar(ctx context.Context, id string, in CarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id string) error
}

// ContactInput is a visitor contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// MessageGateway wraps the remote contact-message endpoints. MarkRead is
// one-way: a message never returns to unread.
type MessageGateway interface {
	ListMessages(ctx context.Context) ([]domain.Message, error)
	CreateMessage(ctx context.Context, in ContactInput) (*domain.Message, error)
	MarkRead(ctx context.Context, id string) (*domain.Message, error)
}

// BookingCreateInput carries a validated booking request. Dates are the
// date-only strings the remote API expects.
type BookingCreateInput struct {
	CarID     string
	StartDate string
	EndDate   string
	Message   string
}

// BookingGateway wraps the remote booking endpoints. ListBookings is the
// admin view over all bookings; MyBookings is scoped to the caller's token.
type BookingGateway interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, in BookingCreateInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) error
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}
