package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/handler"
	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/infrastructure/apiclient"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unauthenticated requests to the login page.
//   - Maps known errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the shared error page instead of a bare status line.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrNotAuthenticated) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		if renderErr := c.Render(code, "error", handler.NewErrorPage(c, code, msg)); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream API errors carry their own status and a displayable message.
	if apiErr, ok := apiclient.AsError(err); ok {
		code := apiErr.StatusCode
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		return code, apiErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "something went wrong on our side"
}
