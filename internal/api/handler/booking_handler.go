package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/metrics"
	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// BookingHandler serves the per-car booking flow.
type BookingHandler struct {
	cars     ports.CarGateway
	bookings ports.BookingGateway
	now      func() time.Time
	log      zerolog.Logger
}

func NewBookingHandler(cars ports.CarGateway, bookings ports.BookingGateway, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{cars: cars, bookings: bookings, now: time.Now, log: log}
}

type bookingForm struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Message   string `form:"message"`
}

type bookingPage struct {
	basePage
	Car   domain.Car
	Form  bookingForm
	Quote *domain.BookingQuote
}

// Form renders the booking page for one car.
func (h *BookingHandler) Form(c echo.Context) error {
	car, err := h.cars.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apiErr, ok := apiclient.AsError(err); ok && apiErr.IsNotFound() {
			return echo.NewHTTPError(http.StatusNotFound, "car not found")
		}
		return err
	}

	return c.Render(http.StatusOK, "booking", bookingPage{basePage: newBasePage(c), Car: *car})
}

// Submit validates the date range locally and creates the booking. Local
// rejections re-render the form inline; remote failures banner the page.
func (h *BookingHandler) Submit(c echo.Context) error {
	var form bookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	car, err := h.cars.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apiErr, ok := apiclient.AsError(err); ok && apiErr.IsNotFound() {
			return echo.NewHTTPError(http.StatusNotFound, "car not found")
		}
		return err
	}

	page := bookingPage{basePage: newBasePage(c), Car: *car, Form: form}

	quote, err := domain.ValidateBookingDates(form.StartDate, form.EndDate, car.Price, h.now())
	if err != nil {
		page.SetError(validationMessage(err))
		return c.Render(http.StatusOK, "booking", page)
	}
	page.Quote = &quote

	_, err = h.bookings.CreateBooking(tokenCtx(c), ports.BookingCreateInput{
		CarID:     car.ID,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		Message:   form.Message,
	})
	if err != nil {
		metrics.BookingsSubmittedTotal.WithLabelValues("rejected").Inc()
		h.log.Error().Err(err).Str("car_id", car.ID).Msg("booking create failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "booking", page)
	}

	metrics.BookingsSubmittedTotal.WithLabelValues("accepted").Inc()
	setFlash(c, "success", "Booking submitted, we'll confirm it shortly")
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// validationMessage maps a booking validation sentinel to the inline message
// shown next to the form.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingDates):
		return "Please select both start and end dates"
	case errors.Is(err, domain.ErrBadDateFormat):
		return "Dates must use the YYYY-MM-DD format"
	case errors.Is(err, domain.ErrEndNotAfterStart):
		return "End date must be after start date"
	case errors.Is(err, domain.ErrStartBeforeToday):
		return "Start date cannot be in the past"
	}
	return err.Error()
}
