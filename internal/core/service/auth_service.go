package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

// AuthService composes the auth gateway with the session store so the
// contract "login, register, and profile update persist the returned identity
// on success" holds for every caller.
type AuthService struct {
	gateway  ports.AuthGateway
	sessions *SessionService
	log      zerolog.Logger
}

func NewAuthService(gateway ports.AuthGateway, sessions *SessionService, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, sessions: sessions, log: log}
}

// Login authenticates against the remote API and adopts the returned identity
// into the session store.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.UserSummary, error) {
	token, user, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sid, token, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", email).Bool("admin", user.IsAdmin).Msg("login")
	return user, nil
}

// Register creates an account and adopts the returned identity.
func (s *AuthService) Register(ctx context.Context, sid string, in ports.RegisterInput) (*domain.UserSummary, error) {
	token, user, err := s.gateway.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sid, token, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", in.Email).Msg("registered")
	return user, nil
}

// Logout destroys the session. Purely client-side: the remote token is simply
// forgotten.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Clear(ctx, sid)
}

// UpdateProfile submits the editable fields to the remote API and re-persists
// the merged identity. Identity and role fields the response omits are kept
// from the current record.
func (s *AuthService) UpdateProfile(ctx context.Context, sid string, in ports.ProfileUpdateInput) (*domain.UserSummary, error) {
	sess := s.sessions.Restore(ctx, sid)
	if !sess.LoggedIn() {
		return nil, domain.ErrNotAuthenticated
	}

	updated, err := s.gateway.UpdateProfile(ports.WithToken(ctx, sess.Token), in)
	if err != nil {
		return nil, err
	}

	if updated.Email == "" {
		updated.Email = sess.User.Email
	}
	if !updated.IsAdmin {
		updated.IsAdmin = sess.User.IsAdmin
	}

	if err := s.sessions.Set(ctx, sid, sess.Token, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
