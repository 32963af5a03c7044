package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

type stubAuthGateway struct {
	token     string
	user      *domain.UserSummary
	err       error
	profileIn ports.ProfileUpdateInput
	seenToken string
}

func (g *stubAuthGateway) Login(_ context.Context, _, _ string) (string, *domain.UserSummary, error) {
	return g.token, g.user, g.err
}

func (g *stubAuthGateway) Register(_ context.Context, _ ports.RegisterInput) (string, *domain.UserSummary, error) {
	return g.token, g.user, g.err
}

func (g *stubAuthGateway) UpdateProfile(ctx context.Context, in ports.ProfileUpdateInput) (*domain.UserSummary, error) {
	g.profileIn = in
	g.seenToken = ports.TokenFromContext(ctx)
	if g.err != nil {
		return nil, g.err
	}
	return &domain.UserSummary{FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone}, nil
}

func newAuthFixture(gw *stubAuthGateway) (*AuthService, *SessionService) {
	sessions := NewSessionService(newStubSessionRepo(), nil, nil, zerolog.Nop())
	return NewAuthService(gw, sessions, zerolog.Nop()), sessions
}

func TestAuthService_LoginPersistsSession(t *testing.T) {
	gw := &stubAuthGateway{token: "tok-abc", user: testUser()}
	svc, sessions := newAuthFixture(gw)
	ctx := context.Background()

	user, err := svc.Login(ctx, "sid1", "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	sess := sessions.Restore(ctx, "sid1")
	if !sess.LoggedIn() || sess.Token != "tok-abc" {
		t.Fatalf("login did not persist the session: %+v", sess)
	}
}

func TestAuthService_LoginFailureLeavesNoSession(t *testing.T) {
	gw := &stubAuthGateway{err: errors.New("invalid credentials")}
	svc, sessions := newAuthFixture(gw)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid1", "dana@example.com", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if sess := sessions.Restore(ctx, "sid1"); sess.LoggedIn() {
		t.Fatalf("failed login persisted a session")
	}
}

func TestAuthService_Logout(t *testing.T) {
	gw := &stubAuthGateway{token: "tok-abc", user: testUser()}
	svc, sessions := newAuthFixture(gw)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid1", "dana@example.com", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := svc.Logout(ctx, "sid1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if sess := sessions.Restore(ctx, "sid1"); sess.LoggedIn() {
		t.Fatalf("session survived logout")
	}
}

func TestAuthService_UpdateProfileMergesIdentity(t *testing.T) {
	admin := testUser()
	admin.IsAdmin = true
	gw := &stubAuthGateway{token: "tok-abc", user: admin}
	svc, sessions := newAuthFixture(gw)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid1", "dana@example.com", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, "sid1", ports.ProfileUpdateInput{FirstName: "Dee", LastName: "Reyes", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if gw.seenToken != "tok-abc" {
		t.Fatalf("profile update sent without bearer token")
	}
	// Fields the response omits are kept from the current record.
	if updated.Email != "dana@example.com" || !updated.IsAdmin {
		t.Fatalf("identity fields lost in merge: %+v", updated)
	}

	sess := sessions.Restore(ctx, "sid1")
	if sess.Token != "tok-abc" {
		t.Fatalf("profile update changed the token")
	}
	if sess.User.FirstName != "Dee" {
		t.Fatalf("updated name not persisted: %+v", sess.User)
	}
}

func TestAuthService_UpdateProfileRequiresSession(t *testing.T) {
	gw := &stubAuthGateway{}
	svc, _ := newAuthFixture(gw)

	_, err := svc.UpdateProfile(context.Background(), "nobody", ports.ProfileUpdateInput{FirstName: "Dee"})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
