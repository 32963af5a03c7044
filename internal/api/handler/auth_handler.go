package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/metrics"
	"github.com/velocar/rental-portal/internal/api/middleware"
	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/core/service"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// maxAvatarBytes caps the profile image upload passed through to the API.
const maxAvatarBytes = 5 << 20

// AuthHandler serves the login, registration, logout, and profile flows.
type AuthHandler struct {
	auth     *service.AuthService
	bookings ports.BookingGateway
	log      zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, bookings ports.BookingGateway, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, bookings: bookings, log: log}
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName"  validate:"required"`
	Email     string `form:"email"     validate:"required,email"`
	Phone     string `form:"phone"`
	Password  string `form:"password"  validate:"required,min=6"`
}

type profileForm struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName"  validate:"required"`
	Phone     string `form:"phone"`
}

type loginPage struct {
	basePage
	Email string
}

type registerPage struct {
	basePage
	Form registerForm
}

type profilePage struct {
	basePage
	User     domain.UserSummary
	Bookings []domain.Booking
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", loginPage{basePage: newBasePage(c)})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	page := loginPage{basePage: newBasePage(c), Email: form.Email}
	if err := c.Validate(&form); err != nil {
		page.SetError(err.Error())
		return c.Render(http.StatusOK, "login", page)
	}

	user, err := h.auth.Login(c.Request().Context(), middleware.SessionID(c), form.Email, form.Password)
	if err != nil {
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "login", page)
	}

	metrics.SessionsStartedTotal.WithLabelValues("login").Inc()
	if user.IsAdmin {
		return c.Redirect(http.StatusSeeOther, "/admin/cars")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", registerPage{basePage: newBasePage(c)})
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	page := registerPage{basePage: newBasePage(c), Form: form}
	if err := c.Validate(&form); err != nil {
		page.SetError(err.Error())
		return c.Render(http.StatusOK, "register", page)
	}

	_, err := h.auth.Register(c.Request().Context(), middleware.SessionID(c), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Password:  form.Password,
	})
	if err != nil {
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "register", page)
	}

	metrics.SessionsStartedTotal.WithLabelValues("register").Inc()
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session and returns to the home page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.SessionID(c)); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Profile renders the profile page: the editable identity form plus the
// caller's bookings. A bookings fetch failure banners the page but keeps the
// form usable.
func (h *AuthHandler) Profile(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	page := profilePage{basePage: newBasePage(c), User: *sess.User}

	bookings, err := h.bookings.MyBookings(tokenCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("my bookings fetch failed")
		page.SetError(apiclient.UserMessage(err))
	} else {
		page.Bookings = bookings
	}

	return c.Render(http.StatusOK, "profile", page)
}

// UpdateProfile handles the multipart profile form: editable fields plus the
// optional avatar upload, passed through to the remote API.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	sess := middleware.SessionFromContext(c)
	if err := c.Validate(&form); err != nil {
		page := profilePage{basePage: newBasePage(c), User: *sess.User}
		page.SetError(err.Error())
		return c.Render(http.StatusOK, "profile", page)
	}

	in := ports.ProfileUpdateInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
	}

	if file, err := c.FormFile("profileImage"); err == nil && file != nil {
		src, openErr := file.Open()
		if openErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable profile image")
		}
		data, readErr := io.ReadAll(io.LimitReader(src, maxAvatarBytes+1))
		_ = src.Close()
		if readErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable profile image")
		}
		if len(data) > maxAvatarBytes {
			page := profilePage{basePage: newBasePage(c), User: *sess.User}
			page.SetError("profile image too large")
			return c.Render(http.StatusOK, "profile", page)
		}
		in.ImageFilename = file.Filename
		in.ImageData = data
	}

	if _, err := h.auth.UpdateProfile(c.Request().Context(), middleware.SessionID(c), in); err != nil {
		page := profilePage{basePage: newBasePage(c), User: *sess.User}
		page.SetError(apiclient.UserMessage(err))
		return c.Render(http.StatusOK, "profile", page)
	}

	setFlash(c, "success", "Profile updated")
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// CancelBooking cancels one of the caller's own bookings from the profile
// page.
func (h *AuthHandler) CancelBooking(c echo.Context) error {
	if err := h.bookings.CancelBooking(tokenCtx(c), c.Param("id")); err != nil {
		setFlash(c, "error", apiclient.UserMessage(err))
	} else {
		setFlash(c, "success", "Booking cancelled")
	}
	return c.Redirect(http.StatusSeeOther, "/profile")
}
