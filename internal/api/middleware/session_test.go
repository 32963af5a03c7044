package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/velocar/rental-portal/internal/core/domain"
)

type stubRestorer struct {
	sessions map[string]domain.Session
	lastSID  string
}

func (r *stubRestorer) Restore(_ context.Context, sid string) domain.Session {
	r.lastSID = sid
	return r.sessions[sid]
}

func signedCookie(t *testing.T, secret, sid string) *http.Cookie {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sid}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}
	return &http.Cookie{Name: cookieName, Value: signed}
}

func TestSession_RestoresFromCookie(t *testing.T) {
	e := echo.New()
	store := &stubRestorer{sessions: map[string]domain.Session{
		"sid-1": {Token: "tok", User: &domain.UserSummary{FirstName: "Dana"}},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "secret", "sid-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret", store)(func(c echo.Context) error {
		if SessionID(c) != "sid-1" {
			t.Fatalf("session id not propagated: %q", SessionID(c))
		}
		if !SessionFromContext(c).LoggedIn() {
			t.Fatalf("restored session not on context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_MissingCookieMintsFreshID(t *testing.T) {
	e := echo.New()
	store := &stubRestorer{sessions: map[string]domain.Session{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret", store)(func(c echo.Context) error {
		if SessionID(c) == "" {
			t.Fatalf("no session id minted")
		}
		if SessionFromContext(c).LoggedIn() {
			t.Fatalf("anonymous session restored an identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != cookieName {
		t.Fatalf("fresh session cookie not issued")
	}
}

func TestSession_TamperedCookieIgnored(t *testing.T) {
	e := echo.New()
	store := &stubRestorer{sessions: map[string]domain.Session{
		"sid-1": {Token: "tok", User: &domain.UserSummary{FirstName: "Dana"}},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, "wrong-secret", "sid-1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("secret", store)(func(c echo.Context) error {
		if SessionID(c) == "sid-1" {
			t.Fatalf("tampered cookie accepted")
		}
		if SessionFromContext(c).LoggedIn() {
			t.Fatalf("tampered cookie restored an identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
