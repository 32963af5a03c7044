// Package relay carries the two cross-context signals of the portal over
// Redis pub/sub: the fire-and-forget unread-count badge update and the
// persisted-session-changed feed. Both are best effort: no delivery or
// ordering guarantee, the most recent value received wins.
package relay

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	unreadChannel  = "rental:unread"
	sessionChannel = "rental:sessions"

	kindUnreadCount = "updateUnreadCount"
)

type unreadSignal struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type sessionSignal struct {
	SessionID string `json:"sessionId"`
	User      string `json:"user"`
}

// Relay publishes and consumes the portal's cross-context signals.
type Relay struct {
	client *redis.Client
	log    zerolog.Logger
}

func New(client *redis.Client, log zerolog.Logger) *Relay {
	return &Relay{client: client, log: log}
}

// PublishUnreadCount emits the badge signal. Fire and forget: a publish
// failure is logged, never surfaced to the triggering action.
func (r *Relay) PublishUnreadCount(ctx context.Context, count int) error {
	raw, err := json.Marshal(unreadSignal{Type: kindUnreadCount, Count: count})
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, unreadChannel, raw).Err(); err != nil {
		r.log.Warn().Err(err).Int("count", count).Msg("unread relay publish failed")
		return err
	}
	return nil
}

// PublishSessionChange broadcasts that a persisted session record changed.
func (r *Relay) PublishSessionChange(ctx context.Context, sessionID, userJSON string) error {
	raw, err := json.Marshal(sessionSignal{SessionID: sessionID, User: userJSON})
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, sessionChannel, raw).Err(); err != nil {
		r.log.Warn().Err(err).Str("session_id", sessionID).Msg("session feed publish failed")
		return err
	}
	return nil
}

// Listen consumes both channels until ctx is cancelled. onUnread receives the
// latest relayed badge count; onSessionChange receives the session id and the
// new serialized user record. Malformed payloads are dropped with a log line.
func (r *Relay) Listen(ctx context.Context, onUnread func(context.Context, int), onSessionChange func(sessionID, userJSON string)) {
	sub := r.client.Subscribe(ctx, unreadChannel, sessionChannel)

	go func() {
		defer func() { _ = sub.Close() }()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.dispatch(ctx, msg, onUnread, onSessionChange)
			}
		}
	}()
}

func (r *Relay) dispatch(ctx context.Context, msg *redis.Message, onUnread func(context.Context, int), onSessionChange func(string, string)) {
	switch msg.Channel {
	case unreadChannel:
		var sig unreadSignal
		if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil || sig.Type != kindUnreadCount {
			r.log.Warn().Str("payload", msg.Payload).Msg("dropping malformed unread signal")
			return
		}
		if onUnread != nil {
			onUnread(ctx, sig.Count)
		}
	case sessionChannel:
		var sig sessionSignal
		if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil || sig.SessionID == "" {
			r.log.Warn().Str("payload", msg.Payload).Msg("dropping malformed session signal")
			return
		}
		if onSessionChange != nil {
			onSessionChange(sig.SessionID, sig.User)
		}
	}
}
