package domain

import "errors"

// Booking validation rejections. Each maps to an inline form error.
var (
	ErrMissingDates     = errors.New("missing start or end date")
	ErrBadDateFormat    = errors.New("invalid date format")
	ErrEndNotAfterStart = errors.New("end date not after start date")
	ErrStartBeforeToday = errors.New("start date before today")
)

// ErrSessionNotFound is returned by the session repository for an absent key.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotAuthenticated is returned when an operation requires a logged-in
// identity and none is present.
var ErrNotAuthenticated = errors.New("not authenticated")
