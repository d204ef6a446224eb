// Package livefeed implements the live-list reconciliation contracts used by
// the chat and notification screens: an ordered message cache that merges
// real-time pushes with bulk fetches, and calendar-day bucketing for the
// notification list.
package livefeed

import (
	"context"
	"sort"
	"sync"

	"barangku/internal/domain/entity"
	"barangku/pkg/logger"
)

// State of a feed for one open conversation.
type State int

const (
	StateLoading State = iota
	StateReady
)

// MarkReadFunc marks the conversation as read on behalf of the viewer. It is
// invoked fire-and-forget: failures are logged, never surfaced.
type MarkReadFunc func(ctx context.Context, chatID string) error

// MessageFeed keeps the in-memory ordered message sequence for one open
// conversation consistent across the initial bulk fetch, user sends and
// asynchronously pushed events. Each message id appears exactly once and the
// sequence stays sorted ascending by creation time no matter the arrival
// order.
type MessageFeed struct {
	mu       sync.Mutex
	chatID   string
	viewerID string
	state    State
	messages []*entity.Message
	seen     map[string]bool
	markRead MarkReadFunc
}

func NewMessageFeed(chatID, viewerID string, markRead MarkReadFunc) *MessageFeed {
	return &MessageFeed{
		chatID:   chatID,
		viewerID: viewerID,
		state:    StateLoading,
		seen:     make(map[string]bool),
		markRead: markRead,
	}
}

func (f *MessageFeed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ApplyFetch completes the initial bulk fetch. A failed fetch still leaves
// the feed Ready with an empty list; there is no automatic retry.
func (f *MessageFeed) ApplyFetch(messages []*entity.Message, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateReady
	if err != nil {
		logger.Warn("message fetch failed for chat %s: %v", f.chatID, err)
		return
	}

	for _, msg := range messages {
		if f.seen[msg.ID] {
			continue
		}
		f.seen[msg.ID] = true
		f.messages = append(f.messages, msg)
	}
	f.resort()
}

// Reload replaces the feed contents with an authoritative list, keeping any
// pushed messages the fetch has not caught up with yet.
func (f *MessageFeed) Reload(messages []*entity.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, msg := range messages {
		if f.seen[msg.ID] {
			continue
		}
		f.seen[msg.ID] = true
		f.messages = append(f.messages, msg)
	}
	f.resort()
	f.state = StateReady
}

// Merge applies one pushed event. Duplicate ids are discarded so delivery is
// idempotent; new messages are inserted and the whole sequence re-sorted to
// tolerate out-of-order arrival. An incoming message not authored by the
// viewer triggers a detached mark-as-read call.
func (f *MessageFeed) Merge(msg *entity.Message) bool {
	f.mu.Lock()
	if f.seen[msg.ID] {
		f.mu.Unlock()
		return false
	}
	f.seen[msg.ID] = true
	f.messages = append(f.messages, msg)
	f.resort()
	markRead := f.markRead
	chatID := f.chatID
	fromOther := msg.SenderID != f.viewerID
	f.mu.Unlock()

	if fromOther && markRead != nil {
		go func() {
			if err := markRead(context.Background(), chatID); err != nil {
				logger.SideEffect("mark_chat_read", err)
			}
		}()
	}

	return true
}

// Messages returns a copy of the current ordered sequence.
func (f *MessageFeed) Messages() []*entity.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*entity.Message, len(f.messages))
	copy(out, f.messages)
	return out
}

func (f *MessageFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// resort keeps ascending creation order; equal timestamps keep their
// insertion order.
func (f *MessageFeed) resort() {
	sort.SliceStable(f.messages, func(i, j int) bool {
		return f.messages[i].CreatedAt.Before(f.messages[j].CreatedAt)
	})
}
