package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/metrics"
	"github.com/velocar/rental-portal/internal/api/middleware"
	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/core/service"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// AdminHandler serves the three-tab management console: cars, bookings, and
// contact messages. Every route is behind the admin guard; a failed fetch
// banners the affected tab instead of taking the console down.
type AdminHandler struct {
	cars     ports.CarGateway
	bookings ports.BookingGateway
	messages ports.MessageGateway
	sessions *service.SessionService
	relay    ports.UnreadPublisher
	log      zerolog.Logger
}

func NewAdminHandler(
	cars ports.CarGateway,
	bookings ports.BookingGateway,
	messages ports.MessageGateway,
	sessions *service.SessionService,
	relay ports.UnreadPublisher,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		cars:     cars,
		bookings: bookings,
		messages: messages,
		sessions: sessions,
		relay:    relay,
		log:      log,
	}
}

// Index lands on the cars tab.
func (h *AdminHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/admin/cars")
}

// ── Cars tab ──────────────────────────────────────────────────────────────────

type adminCarsPage struct {
	basePage
	Cars       []domain.Car
	ShowForm   bool
	Editing    bool
	Form       carForm
	FormAction string
}

// Cars renders the fleet list. ?new=1 opens a blank create form; ?edit=<id>
// opens the form pre-filled from the current remote record so the admin edits
// live data, not a stale row.
func (h *AdminHandler) Cars(c echo.Context) error {
	page := adminCarsPage{basePage: newBasePage(c)}

	cars, err := h.cars.ListCars(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("admin car list failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "admin_cars", page)
	}
	page.Cars = cars

	switch {
	case c.QueryParam("edit") != "":
		id := c.QueryParam("edit")
		car, err := h.cars.GetCar(c.Request().Context(), id)
		if err != nil {
			h.log.Error().Err(err).Str("car_id", id).Msg("admin car fetch failed")
			page.SetError(apiclient.UserMessage(err))
			return c.Render(http.StatusOK, "admin_cars", page)
		}
		page.ShowForm = true
		page.Editing = true
		page.Form = prefillCarForm(*car)
		page.FormAction = "/admin/cars/" + car.ID
	case c.QueryParam("new") != "":
		page.ShowForm = true
		page.Form = carForm{Available: "on"}
		page.FormAction = "/admin/cars"
	}

	return c.Render(http.StatusOK, "admin_cars", page)
}

// CreateCar adds a car to the fleet and redirects back to the list.
func (h *AdminHandler) CreateCar(c echo.Context) error {
	return h.saveCar(c, "", "create")
}

// UpdateCar overwrites the full editable field set of one car.
func (h *AdminHandler) UpdateCar(c echo.Context) error {
	return h.saveCar(c, c.Param("id"), "update")
}

// saveCar is the shared create/update path: bind the text form, coerce the
// numeric fields, validate, then call the gateway. A coercion or validation
// failure re-renders the form with the admin's input intact.
func (h *AdminHandler) saveCar(c echo.Context, id, action string) error {
	var form carForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	renderFailure := func(msg string) error {
		page := adminCarsPage{basePage: newBasePage(c), ShowForm: true, Form: form}
		if id == "" {
			page.FormAction = "/admin/cars"
		} else {
			page.Editing = true
			page.FormAction = "/admin/cars/" + id
		}
		if cars, listErr := h.cars.ListCars(c.Request().Context()); listErr == nil {
			page.Cars = cars
		}
		page.SetError(msg)
		return c.Render(http.StatusOK, "admin_cars", page)
	}

	fields, err := form.coerce()
	if err != nil {
		return renderFailure(err.Error())
	}
	if err := c.Validate(fields); err != nil {
		return renderFailure("Please fill in every required field correctly")
	}

	if id == "" {
		_, err = h.cars.CreateCar(tokenCtx(c), fields.toInput())
	} else {
		_, err = h.cars.UpdateCar(tokenCtx(c), id, fields.toInput())
	}
	if err != nil {
		h.log.Error().Err(err).Str("car_id", id).Str("action", action).Msg("admin car save failed")
		return renderFailure(apiclient.UserMessage(err))
	}

	if action == "create" {
		setFlash(c, "success", "Car added to the fleet")
	} else {
		setFlash(c, "success", "Car updated")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/cars")
}

// DeleteCar removes a car. The delete only runs when the confirmation field
// was submitted; a bare POST bounces back untouched.
func (h *AdminHandler) DeleteCar(c echo.Context) error {
	if c.FormValue("confirm") != "true" {
		setFlash(c, "error", "Deletion requires confirmation")
		return c.Redirect(http.StatusSeeOther, "/admin/cars")
	}

	id := c.Param("id")
	if err := h.cars.DeleteCar(tokenCtx(c), id); err != nil {
		h.log.Error().Err(err).Str("car_id", id).Msg("admin car delete failed")
		setFlash(c, "error", apiclient.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/admin/cars")
	}

	setFlash(c, "success", "Car removed")
	return c.Redirect(http.StatusSeeOther, "/admin/cars")
}

// prefillCarForm renders a car back into form text fields for editing.
func prefillCarForm(car domain.Car) carForm {
	form := carForm{
		Name:         car.Name,
		Brand:        car.Brand,
		ModelName:    car.ModelName,
		Year:         strconv.Itoa(car.Year),
		Price:        strconv.FormatFloat(car.Price, 'f', -1, 64),
		Transmission: string(car.Transmission),
		FuelType:     string(car.FuelType),
		Seats:        strconv.Itoa(car.Seats),
		Mileage:      strconv.Itoa(car.Mileage),
		Image:        car.Image,
	}
	if car.Available {
		form.Available = "on"
	}
	return form
}

// ── Bookings tab ──────────────────────────────────────────────────────────────

type adminBookingsPage struct {
	basePage
	Bookings []domain.Booking
	Statuses []domain.BookingStatus
}

// Bookings renders every booking with its embedded customer and car summaries.
// Either summary may be nil when the referenced record was deleted; the
// template shows a placeholder instead of the row disappearing.
func (h *AdminHandler) Bookings(c echo.Context) error {
	page := adminBookingsPage{basePage: newBasePage(c), Statuses: domain.BookingStatuses}

	bookings, err := h.bookings.ListBookings(tokenCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("admin booking list failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "admin_bookings", page)
	}

	// Newest first.
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	page.Bookings = bookings

	return c.Render(http.StatusOK, "admin_bookings", page)
}

// UpdateBookingStatus moves a booking to the selected status. Any of the three
// states may be chosen regardless of the current one.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	status := domain.BookingStatus(c.FormValue("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown booking status")
	}

	id := c.Param("id")
	if _, err := h.bookings.UpdateBookingStatus(tokenCtx(c), id, status); err != nil {
		h.log.Error().Err(err).Str("booking_id", id).Msg("admin booking status update failed")
		setFlash(c, "error", apiclient.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/admin/bookings")
	}

	setFlash(c, "success", "Booking marked "+string(status))
	return c.Redirect(http.StatusSeeOther, "/admin/bookings")
}

// DeleteBooking removes a booking record after confirmation.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	if c.FormValue("confirm") != "true" {
		setFlash(c, "error", "Deletion requires confirmation")
		return c.Redirect(http.StatusSeeOther, "/admin/bookings")
	}

	id := c.Param("id")
	if err := h.bookings.DeleteBooking(tokenCtx(c), id); err != nil {
		h.log.Error().Err(err).Str("booking_id", id).Msg("admin booking delete failed")
		setFlash(c, "error", apiclient.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/admin/bookings")
	}

	setFlash(c, "success", "Booking deleted")
	return c.Redirect(http.StatusSeeOther, "/admin/bookings")
}

// ── Messages tab ──────────────────────────────────────────────────────────────

type adminMessagesPage struct {
	basePage
	Messages []domain.Message
	Unread   int
}

// Messages renders the contact inbox, unread first, newest first within each
// group.
func (h *AdminHandler) Messages(c echo.Context) error {
	page := adminMessagesPage{basePage: newBasePage(c)}

	msgs, err := h.messages.ListMessages(tokenCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("admin message list failed")
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "admin_messages", page)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].Read != msgs[j].Read {
			return !msgs[i].Read
		}
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	page.Messages = msgs
	page.Unread = domain.CountUnread(msgs)

	return c.Render(http.StatusOK, "admin_messages", page)
}

// MarkMessageRead flips one message to read, then re-fetches the inbox and
// recomputes the unread count from the fetched list rather than decrementing
// a local number. The fresh count is persisted for this session and relayed
// to every other admin session.
func (h *AdminHandler) MarkMessageRead(c echo.Context) error {
	ctx := tokenCtx(c)
	id := c.Param("id")

	if _, err := h.messages.MarkRead(ctx, id); err != nil {
		h.log.Error().Err(err).Str("message_id", id).Msg("admin mark read failed")
		setFlash(c, "error", apiclient.UserMessage(err))
		return c.Redirect(http.StatusSeeOther, "/admin/messages")
	}
	metrics.MessagesMarkedReadTotal.Inc()

	msgs, err := h.messages.ListMessages(ctx)
	if err != nil {
		// The flip succeeded; the badge catches up on the next refetch.
		h.log.Warn().Err(err).Msg("message refetch after mark read failed")
		return c.Redirect(http.StatusSeeOther, "/admin/messages")
	}

	count := domain.CountUnread(msgs)
	h.sessions.SetUnreadCount(ctx, middleware.SessionID(c), count)
	metrics.UnreadBadgeCount.Set(float64(count))

	if h.relay != nil {
		if err := h.relay.PublishUnreadCount(ctx, count); err != nil {
			h.log.Warn().Err(err).Int("count", count).Msg("unread relay publish failed")
		}
	}

	return c.Redirect(http.StatusSeeOther, "/admin/messages")
}
