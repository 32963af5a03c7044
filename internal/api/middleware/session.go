package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velocar/rental-portal/internal/core/domain"
)

const (
	cookieName   = "rental_session"
	cookieMaxAge = 30 * 24 * time.Hour

	ctxKeySessionID = "session_id"
	ctxKeySession   = "session"
)

// SessionRestorer derives the current session state from persisted storage.
type SessionRestorer interface {
	Restore(ctx context.Context, sid string) domain.Session
}

// Session identifies the browser via a signed cookie and restores the
// persisted session state on every request, before any guard or handler runs.
// A missing or tampered cookie yields a fresh anonymous session id.
func Session(secret string, store SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := sessionIDFromCookie(c, secret)
			if sid == "" {
				sid = uuid.NewString()
				issueCookie(c, secret, sid)
			}

			c.Set(ctxKeySessionID, sid)
			c.Set(ctxKeySession, store.Restore(c.Request().Context(), sid))

			return next(c)
		}
	}
}

func sessionIDFromCookie(c echo.Context, secret string) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}

func issueCookie(c echo.Context, secret, sid string) {
	claims := jwt.MapClaims{"sid": sid}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID returns the request's session id.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxKeySessionID).(string)
	return sid
}

// SessionFromContext returns the session snapshot restored for this request.
func SessionFromContext(c echo.Context) domain.Session {
	sess, _ := c.Get(ctxKeySession).(domain.Session)
	return sess
}
