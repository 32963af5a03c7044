package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velocar/rental-portal/internal/core/domain"
)

// sessionTTL bounds how long an idle session record survives. Every write
// refreshes it.
const sessionTTL = 30 * 24 * time.Hour

// SessionRepository persists the two-key session record (token + serialized
// user) and the derived unread counter. Last write wins; there is no locking
// across execution contexts.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository wraps the given Redis client.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Get returns the value under key, or domain.ErrSessionNotFound.
func (r *SessionRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("session get: %w", err)
	}
	return v, nil
}

// Set writes the value under key, refreshing the session TTL.
func (r *SessionRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, sessionTTL).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Del removes the given keys.
func (r *SessionRepository) Del(ctx context.Context, keys ...string) error {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session del: %w", err)
	}
	return nil
}
