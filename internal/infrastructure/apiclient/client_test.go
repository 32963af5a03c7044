package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	ctx := ports.WithToken(context.Background(), "tok-abc")
	if _, err := c.ListCars(ctx); err != nil {
		t.Fatalf("ListCars returned error: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	if _, err := c.ListCars(context.Background()); err != nil {
		t.Fatalf("ListCars returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_DecodesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, _, err := c.Login(context.Background(), "a@b.c", "nope")
	if err == nil {
		t.Fatalf("expected error")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *apiclient.Error, got %T", err)
	}
	if !apiErr.IsUnauthorized() {
		t.Fatalf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid email or password" {
		t.Fatalf("server message lost: %q", apiErr.Message)
	}
	if UserMessage(err) != "Invalid email or password" {
		t.Fatalf("UserMessage did not surface the server message")
	}
}

func TestClient_GenericFailureMarkerOnUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream down</html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.ListCars(context.Background())
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *apiclient.Error, got %v", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("expected generic marker, got %q", apiErr.Message)
	}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"token":"tok-abc","user":{"firstName":"Dana","lastName":"Reyes","email":"dana@example.com","isAdmin":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	token, user, err := c.Login(context.Background(), "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("unexpected token: %q", token)
	}
	if user == nil || !user.IsAdmin || user.FirstName != "Dana" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClient_UpdateProfileMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/profile" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		if r.FormValue("firstName") != "Dee" || r.FormValue("phone") != "555-0100" {
			t.Fatalf("fields missing: %v", r.MultipartForm.Value)
		}
		f, header, err := r.FormFile("profileImage")
		if err != nil {
			t.Fatalf("file part missing: %v", err)
		}
		defer f.Close()
		if header.Filename != "avatar.png" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		_, _ = w.Write([]byte(`{"user":{"firstName":"Dee","lastName":"Reyes","profileImage":"https://img/new.png"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	user, err := c.UpdateProfile(context.Background(), ports.ProfileUpdateInput{
		FirstName:     "Dee",
		LastName:      "Reyes",
		Phone:         "555-0100",
		ImageFilename: "avatar.png",
		ImageData:     []byte{0x89, 0x50, 0x4e, 0x47},
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.ProfileImage != "https://img/new.png" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClient_UpdateBookingStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/bookings/b1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"_id":"b1","status":"confirmed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	booking, err := c.UpdateBookingStatus(context.Background(), "b1", domain.BookingConfirmed)
	if err != nil {
		t.Fatalf("UpdateBookingStatus returned error: %v", err)
	}
	if booking.Status != domain.BookingConfirmed {
		t.Fatalf("unexpected status: %s", booking.Status)
	}
}

func TestClient_CountUnread(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-admin" {
			t.Fatalf("unread count fetch missing token")
		}
		_, _ = w.Write([]byte(`[{"_id":"m1","read":false},{"_id":"m2","read":true},{"_id":"m3","read":false}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	n, err := c.CountUnread(context.Background(), "tok-admin")
	if err != nil {
		t.Fatalf("CountUnread returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 unread, got %d", n)
	}
}

func TestClient_TransportErrorWrapped(t *testing.T) {
	c := New("http://127.0.0.1:1", zerolog.Nop())
	_, err := c.ListCars(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if _, ok := AsError(err); ok {
		t.Fatalf("transport failure must not masquerade as an API error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("unexpected API error: %v", apiErr)
	}
}
