package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/velocar/rental-portal/internal/core/domain"
)

func newGuardContext(t *testing.T, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxKeySession, sess)
	return c, rec
}

func adminSession() domain.Session {
	return domain.Session{Token: "tok", User: &domain.UserSummary{FirstName: "A", IsAdmin: true}}
}

func userSession() domain.Session {
	return domain.Session{Token: "tok", User: &domain.UserSummary{FirstName: "U"}}
}

func TestRequireAdmin_LoggedOutRedirects(t *testing.T) {
	c, rec := newGuardContext(t, domain.Session{})

	handler := RequireAdmin()(func(c echo.Context) error {
		t.Fatalf("protected handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("admin content leaked into the denied response")
	}
}

func TestRequireAdmin_NonAdminRedirects(t *testing.T) {
	c, rec := newGuardContext(t, userSession())

	handler := RequireAdmin()(func(c echo.Context) error {
		t.Fatalf("protected handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	c, rec := newGuardContext(t, adminSession())

	called := false
	handler := RequireAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("admin was denied")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireUser_LoggedOutRedirects(t *testing.T) {
	c, rec := newGuardContext(t, domain.Session{})

	handler := RequireUser()(func(c echo.Context) error {
		t.Fatalf("protected handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestRequireUser_LoggedInPasses(t *testing.T) {
	c, _ := newGuardContext(t, userSession())

	called := false
	handler := RequireUser()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("logged-in user was denied")
	}
}

// A half-present session must never satisfy a guard: the predicate is "token
// present AND user present".
func TestRequireUser_PartialSessionDenied(t *testing.T) {
	c, rec := newGuardContext(t, domain.Session{Token: "tok"})

	handler := RequireUser()(func(c echo.Context) error {
		t.Fatalf("protected handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}
