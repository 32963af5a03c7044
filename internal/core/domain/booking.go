package domain

import (
	"math"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists the states offered by the admin status selector.
// Transitions are intentionally unconstrained: the admin may move a booking
// between any of the three.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}

// Valid reports whether s is one of the three known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking references exactly one car and one user by identifier. The embedded
// User and Car summaries are resolved server-side and may be nil when the
// reference no longer exists.
type Booking struct {
	ID         string              `json:"_id"`
	UserID     string              `json:"userId"`
	CarID      string              `json:"carId"`
	StartDate  time.Time           `json:"startDate"`
	EndDate    time.Time           `json:"endDate"`
	TotalPrice float64             `json:"totalPrice"`
	Status     BookingStatus       `json:"status"`
	Message    string              `json:"message,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	User       *BookingUserSummary `json:"user,omitempty"`
	Car        *CarSummary         `json:"car,omitempty"`
}

// BookingUserSummary is the embedded customer reference on a booking row.
type BookingUserSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// dateLayout is the date-only precision used by the booking forms.
const dateLayout = "2006-01-02"

// BookingQuote is the validated outcome of a booking date selection.
type BookingQuote struct {
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	TotalPrice float64
}

// ValidateBookingDates checks a date-range booking request against today's
// date and prices it. Inputs are date-only strings (2006-01-02); today is
// caller-supplied and normalized to midnight so a booking starting today is
// valid. The total charges ceil(whole days between start and end) at
// pricePerDay; partial days round up.
func ValidateBookingDates(startInput, endInput string, pricePerDay float64, today time.Time) (BookingQuote, error) {
	if startInput == "" || endInput == "" {
		return BookingQuote{}, ErrMissingDates
	}

	start, err := time.Parse(dateLayout, startInput)
	if err != nil {
		return BookingQuote{}, ErrBadDateFormat
	}
	end, err := time.Parse(dateLayout, endInput)
	if err != nil {
		return BookingQuote{}, ErrBadDateFormat
	}

	if !end.After(start) {
		return BookingQuote{}, ErrEndNotAfterStart
	}

	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(midnight) {
		return BookingQuote{}, ErrStartBeforeToday
	}

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	return BookingQuote{
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		TotalPrice: pricePerDay * float64(days),
	}, nil
}
