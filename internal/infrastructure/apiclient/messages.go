package apiclient

import (
	"context"

	"github.com/velocar/rental-portal/internal/core/domain"
	"github.com/velocar/rental-portal/internal/core/ports"
)

// ListMessages fetches all contact messages. Requires an admin token.
func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := c.get(ctx, "/messages", "messages_list", &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CreateMessage submits a visitor contact-form message. Unauthenticated.
func (c *Client) CreateMessage(ctx context.Context, in ports.ContactInput) (*domain.Message, error) {
	body := map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"message": in.Message,
	}

	var msg domain.Message
	if err := c.post(ctx, "/messages", "messages_create", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkRead flips a message's read flag to true. One-way; there is no unread
// counterpart.
func (c *Client) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	var msg domain.Message
	if err := c.put(ctx, "/messages/"+id, "messages_mark_read", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CountUnread fetches the message list and counts the unread ones. Wired into
// the session store as its UnreadCounter.
func (c *Client) CountUnread(ctx context.Context, token string) (int, error) {
	msgs, err := c.ListMessages(ports.WithToken(ctx, token))
	if err != nil {
		return 0, err
	}
	return domain.CountUnread(msgs), nil
}
