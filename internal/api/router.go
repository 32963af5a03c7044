package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/handler"
	"github.com/velocar/rental-portal/internal/api/middleware"
	"github.com/velocar/rental-portal/internal/core/ports"
	"github.com/velocar/rental-portal/internal/core/service"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Sessions *service.SessionService
	Auth     *service.AuthService
	Cars     ports.CarGateway
	Bookings ports.BookingGateway
	Messages ports.MessageGateway
	Relay    ports.UnreadPublisher
	API      handler.APIPinger
	Redis    *redis.Client

	SessionSecret string
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental_portal"))
	e.Use(middleware.Session(deps.SessionSecret, deps.Sessions))

	// --- Handlers ---
	pageHandler := handler.NewPageHandler(deps.Cars, deps.Log)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Bookings, deps.Log)
	contactHandler := handler.NewContactHandler(deps.Messages, deps.Log)
	bookingHandler := handler.NewBookingHandler(deps.Cars, deps.Bookings, deps.Log)
	adminHandler := handler.NewAdminHandler(deps.Cars, deps.Bookings, deps.Messages, deps.Sessions, deps.Relay, deps.Log)

	// --- Public pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/cars", pageHandler.Cars)
	e.GET("/about", pageHandler.About)
	e.GET("/contact", contactHandler.Form)
	e.POST("/contact", contactHandler.Submit)

	// --- Auth ---
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Signed-in area ---
	user := e.Group("", middleware.RequireUser())
	user.GET("/profile", authHandler.Profile)
	user.POST("/profile", authHandler.UpdateProfile)
	user.GET("/cars/:id/book", bookingHandler.Form)
	user.POST("/cars/:id/book", bookingHandler.Submit)
	user.POST("/bookings/:id/cancel", authHandler.CancelBooking)

	// --- Admin console ---
	admin := e.Group("/admin", middleware.RequireAdmin())
	admin.GET("", adminHandler.Index)
	admin.GET("/cars", adminHandler.Cars)
	admin.POST("/cars", adminHandler.CreateCar)
	admin.POST("/cars/:id", adminHandler.UpdateCar)
	admin.POST("/cars/:id/delete", adminHandler.DeleteCar)
	admin.GET("/bookings", adminHandler.Bookings)
	admin.POST("/bookings/:id/status", adminHandler.UpdateBookingStatus)
	admin.POST("/bookings/:id/delete", adminHandler.DeleteBooking)
	admin.GET("/messages", adminHandler.Messages)
	admin.POST("/messages/:id/read", adminHandler.MarkMessageRead)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.API)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
