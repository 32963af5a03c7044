package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

// UnreadCounter fetches the current unread-message count using the given
// bearer token. Wired to the message gateway at startup.
type UnreadCounter func(ctx context.Context, token string) (int, error)

// SessionService owns the persisted authentication state: an opaque token and
// a serialized user record per session, stored as two independent keys, plus
// a derived unread counter for admin identities. It is the only component
// allowed to mutate that state; views read snapshots through Restore.
type SessionService struct {
	repo   ports.SessionRepository
	feed   ports.SessionFeedPublisher
	unread UnreadCounter
	log    zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*domain.Session
}

// NewSessionService builds a SessionService. feed may be nil when no
// cross-context feed is configured; unread may be nil when the portal runs
// without an admin badge.
func NewSessionService(repo ports.SessionRepository, feed ports.SessionFeedPublisher, unread UnreadCounter, log zerolog.Logger) *SessionService {
	return &SessionService{
		repo:   repo,
		feed:   feed,
		unread: unread,
		log:    log,
		cache:  make(map[string]*domain.Session),
	}
}

func tokenKey(sid string) string  { return "session:" + sid + ":token" }
func userKey(sid string) string   { return "session:" + sid + ":user" }
func unreadKey(sid string) string { return "session:" + sid + ":unread" }

// Restore derives the session from persisted storage. Both keys present and
// parseable → the identity is adopted. A record that fails to parse is
// cleared and logged, never surfaced. A half-present pair (token without user
// or user without token) is treated as logged out.
func (s *SessionService) Restore(ctx context.Context, sid string) domain.Session {
	token, tokErr := s.repo.Get(ctx, tokenKey(sid))
	rawUser, userErr := s.repo.Get(ctx, userKey(sid))

	if errors.Is(tokErr, domain.ErrSessionNotFound) && errors.Is(userErr, domain.ErrSessionNotFound) {
		return domain.Session{}
	}
	if tokErr != nil || userErr != nil {
		if tokErr != nil && !errors.Is(tokErr, domain.ErrSessionNotFound) {
			s.log.Error().Err(tokErr).Str("session_id", sid).Msg("session token read failed")
		}
		if userErr != nil && !errors.Is(userErr, domain.ErrSessionNotFound) {
			s.log.Error().Err(userErr).Str("session_id", sid).Msg("session user read failed")
		}
		// One of the two is missing or unreadable: do not adopt a partial identity.
		return domain.Session{}
	}

	var user domain.UserSummary
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Error().Err(err).Str("session_id", sid).Msg("corrupt session record, clearing")
		if clearErr := s.Clear(ctx, sid); clearErr != nil {
			s.log.Error().Err(clearErr).Str("session_id", sid).Msg("failed to clear corrupt session")
		}
		return domain.Session{}
	}

	sess := domain.Session{Token: token, User: &user}
	if user.IsAdmin {
		if raw, err := s.repo.Get(ctx, unreadKey(sid)); err == nil {
			if n, convErr := strconv.Atoi(raw); convErr == nil {
				sess.UnreadCount = n
			}
		}
	}

	s.mu.Lock()
	s.cache[sid] = &sess
	s.mu.Unlock()

	return sess
}

// Set persists a fresh identity after a successful login, registration, or
// profile update. The token is written before the user record; if either
// write fails the store clears itself so the two keys never diverge.
func (s *SessionService) Set(ctx context.Context, sid, token string, user *domain.UserSummary) error {
	if token == "" || user == nil {
		return domain.ErrNotAuthenticated
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.repo.Set(ctx, tokenKey(sid), token); err != nil {
		s.clearBestEffort(ctx, sid)
		return err
	}
	if err := s.repo.Set(ctx, userKey(sid), string(rawUser)); err != nil {
		s.clearBestEffort(ctx, sid)
		return err
	}

	sess := domain.Session{Token: token, User: user}

	// Entering an admin identity primes the unread badge. A failed fetch is
	// non-fatal; the badge starts at zero and catches up via the relay.
	if user.IsAdmin && s.unread != nil {
		if n, cntErr := s.unread(ctx, token); cntErr != nil {
			s.log.Warn().Err(cntErr).Str("session_id", sid).Msg("unread count fetch failed")
		} else {
			sess.UnreadCount = n
			if setErr := s.repo.Set(ctx, unreadKey(sid), strconv.Itoa(n)); setErr != nil {
				s.log.Warn().Err(setErr).Str("session_id", sid).Msg("unread count persist failed")
			}
		}
	}

	s.mu.Lock()
	s.cache[sid] = &sess
	s.mu.Unlock()

	if s.feed != nil {
		if pubErr := s.feed.PublishSessionChange(ctx, sid, string(rawUser)); pubErr != nil {
			s.log.Warn().Err(pubErr).Str("session_id", sid).Msg("session change publish failed")
		}
	}

	return nil
}

// Clear removes the persisted token and user record, resets the derived
// unread counter, and drops the in-memory snapshot.
func (s *SessionService) Clear(ctx context.Context, sid string) error {
	err := s.repo.Del(ctx, tokenKey(sid), userKey(sid), unreadKey(sid))

	s.mu.Lock()
	delete(s.cache, sid)
	s.mu.Unlock()

	return err
}

func (s *SessionService) clearBestEffort(ctx context.Context, sid string) {
	if err := s.Clear(ctx, sid); err != nil {
		s.log.Error().Err(err).Str("session_id", sid).Msg("session clear failed")
	}
}

// ObserveExternalChange applies a session record updated from another
// execution context: display name and avatar are re-derived from the new user
// record, the token stays untouched. Malformed payloads are logged and
// ignored.
func (s *SessionService) ObserveExternalChange(sid, userJSON string) {
	var user domain.UserSummary
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		s.log.Warn().Err(err).Str("session_id", sid).Msg("ignoring malformed session change payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.cache[sid]
	if !ok {
		return
	}
	sess.User = &user
}

// SetUnreadCount overwrites the derived unread counter. Only the store itself
// (on admin login) and the notification relay consumer call this; the most
// recent value received wins.
func (s *SessionService) SetUnreadCount(ctx context.Context, sid string, count int) {
	if err := s.repo.Set(ctx, unreadKey(sid), strconv.Itoa(count)); err != nil {
		s.log.Warn().Err(err).Str("session_id", sid).Msg("unread count persist failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.cache[sid]; ok {
		sess.UnreadCount = count
	}
}

// BroadcastUnreadCount applies a relayed unread count to every admin session
// this process knows about. The relay signal carries no addressee: the badge
// is a per-admin view of the same global counter.
func (s *SessionService) BroadcastUnreadCount(ctx context.Context, count int) {
	s.mu.RLock()
	var admins []string
	for sid, sess := range s.cache {
		if sess.IsAdmin() {
			admins = append(admins, sid)
		}
	}
	s.mu.RUnlock()

	for _, sid := range admins {
		s.SetUnreadCount(ctx, sid, count)
	}
}

// Snapshot returns the in-memory view of a session without touching
// persistence.
func (s *SessionService) Snapshot(sid string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.cache[sid]
	if !ok {
		return domain.Session{}, false
	}
	return *sess, true
}
