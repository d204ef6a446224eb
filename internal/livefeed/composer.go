package livefeed

import (
	"context"
	"strings"

	"barangku/internal/domain/entity"
)

// SendFunc performs the remote send for the composer.
type SendFunc func(ctx context.Context, chatID, content string) error

// FetchFunc loads the authoritative message list after a successful send.
type FetchFunc func(ctx context.Context, chatID string) ([]*entity.Message, error)

// Composer drives the conservative re-fetch-after-write send protocol: the
// input is disabled for the duration of the send, a success clears the draft
// and reloads the authoritative list, and a failure keeps the draft intact so
// the user can retry without retyping.
type Composer struct {
	feed  *MessageFeed
	send  SendFunc
	fetch FetchFunc

	draft   string
	sending bool
}

func NewComposer(feed *MessageFeed, send SendFunc, fetch FetchFunc) *Composer {
	return &Composer{feed: feed, send: send, fetch: fetch}
}

func (c *Composer) SetDraft(draft string) {
	c.draft = draft
}

func (c *Composer) Draft() string {
	return c.draft
}

func (c *Composer) Sending() bool {
	return c.sending
}

// Send submits the current draft. An empty or whitespace-only draft and a
// send already in flight are both no-ops.
func (c *Composer) Send(ctx context.Context) error {
	content := strings.TrimSpace(c.draft)
	if content == "" || c.sending {
		return nil
	}

	c.sending = true
	defer func() { c.sending = false }()

	if err := c.send(ctx, c.feed.chatID, content); err != nil {
		return err
	}

	c.draft = ""
	messages, err := c.fetch(ctx, c.feed.chatID)
	if err != nil {
		// The send landed; a failed refetch only delays the echo until
		// the realtime push arrives.
		return nil
	}
	c.feed.Reload(messages)
	return nil
}
