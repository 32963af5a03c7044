package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velocar/rental-portal/internal/api/middleware"
	"github.com/velocar/rental-portal/internal/core/ports"
)

// tokenCtx returns the request context with the session's bearer token
// attached, ready for a gateway call.
func tokenCtx(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if sess := middleware.SessionFromContext(c); sess.LoggedIn() {
		ctx = ports.WithToken(ctx, sess.Token)
	}
	return ctx
}

// newBasePage assembles the layout data shared by every page, consuming the
// pending flash if one is set.
func newBasePage(c echo.Context) basePage {
	return basePage{
		Session: middleware.SessionFromContext(c),
		Flash:   takeFlash(c),
	}
}

const flashCookie = "rental_flash"

// flash is a one-shot notification surviving exactly one redirect.
type flash struct {
	Kind    string // "success" or "error"
	Message string
}

// setFlash stores the notification in a short-lived cookie so it survives the
// redirect-after-mutation round trip.
func setFlash(c echo.Context, kind, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// takeFlash reads and clears the pending notification, if any.
func takeFlash(c echo.Context) *flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(raw, "|")
	if !found {
		return nil
	}
	return &flash{Kind: kind, Message: message}
}
