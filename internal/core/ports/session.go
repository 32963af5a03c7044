package ports

import "context"

// SessionRepository is the persisted key/value store backing the session
// state: one opaque token string and one serialized user record per session,
// plus the derived unread counter. Get returns domain.ErrSessionNotFound for
// an absent key.
type SessionRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// UnreadPublisher emits the fire-and-forget unread-count relay signal after
// an admin action changes the unread count. Best effort: no delivery or
// ordering guarantee, the most recent value received wins.
type UnreadPublisher interface {
	PublishUnreadCount(ctx context.Context, count int) error
}

// SessionFeedPublisher broadcasts that a persisted session record changed so
// other execution contexts can re-derive display data.
type SessionFeedPublisher interface {
	PublishSessionChange(ctx context.Context, sessionID, userJSON string) error
}
