package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const loginPath = "/login"

// RequireUser admits only logged-in sessions. Anyone else is redirected to
// the login page before the protected handler runs, so denied content is
// never rendered, even momentarily. The predicate reads the request-scoped
// snapshot and is re-evaluated on every navigation.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFromContext(c).LoggedIn() {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

// RequireAdmin admits only logged-in admin sessions; it gates the admin
// console and all of its sub-routes.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFromContext(c).IsAdmin() {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
