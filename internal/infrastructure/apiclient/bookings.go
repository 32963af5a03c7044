package apiclient

import (
	"context"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

// ListBookings fetches every booking. Admin view.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/bookings", "bookings_list", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// MyBookings fetches the bookings belonging to the caller's token.
func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/bookings/my-bookings", "bookings_mine", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking submits a validated booking request.
func (c *Client) CreateBooking(ctx context.Context, in ports.BookingCreateInput) (*domain.Booking, error) {
	body := map[string]string{
		"carId":     in.CarID,
		"startDate": in.StartDate,
		"endDate":   in.EndDate,
	}
	if in.Message != "" {
		body["message"] = in.Message
	}

	var booking domain.Booking
	if err := c.post(ctx, "/bookings", "bookings_create", body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels the caller's own booking.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	return c.post(ctx, "/bookings/"+id+"/cancel", "bookings_cancel", nil, nil)
}

// UpdateBookingStatus moves a booking to any of the three states. Admin only;
// the API enforces no transition table.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	body := map[string]string{"status": string(status)}

	var booking domain.Booking
	if err := c.put(ctx, "/bookings/"+id, "bookings_update_status", body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking removes a booking. Admin only.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.delete(ctx, "/bookings/"+id, "bookings_delete")
}
