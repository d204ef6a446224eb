package livefeed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
)

func msg(id, sender string, at time.Time) *entity.Message {
	return &entity.Message{
		ID:        id,
		ChatID:    "chat-1",
		SenderID:  sender,
		Content:   "hello",
		Type:      entity.MessageTypeText,
		CreatedAt: at,
	}
}

type readRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *readRecorder) markRead(ctx context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, chatID)
	return r.err
}

func (r *readRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestFeedStartsLoading(t *testing.T) {
	feed := NewMessageFeed("chat-1", "viewer", nil)
	assert.Equal(t, StateLoading, feed.State())
}

func TestApplyFetchFailureLeavesEmptyReadyFeed(t *testing.T) {
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch(nil, errors.New("network down"))

	assert.Equal(t, StateReady, feed.State())
	assert.Empty(t, feed.Messages())
}

func TestMergeDiscardsDuplicateIDs(t *testing.T) {
	base := time.Now()
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch([]*entity.Message{msg("a", "viewer", base)}, nil)

	assert.False(t, feed.Merge(msg("a", "viewer", base)))
	assert.True(t, feed.Merge(msg("b", "viewer", base.Add(time.Second))))
	assert.False(t, feed.Merge(msg("b", "viewer", base.Add(time.Second))))
	assert.Equal(t, 2, feed.Len())
}

func TestMergeResortsOutOfOrderArrivals(t *testing.T) {
	base := time.Now()
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch(nil, nil)

	feed.Merge(msg("c", "viewer", base.Add(2*time.Second)))
	feed.Merge(msg("a", "viewer", base))
	feed.Merge(msg("b", "viewer", base.Add(time.Second)))

	got := feed.Messages()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestMergeFiresMarkReadForOtherSendersOnly(t *testing.T) {
	rec := &readRecorder{}
	feed := NewMessageFeed("chat-1", "viewer", rec.markRead)
	feed.ApplyFetch(nil, nil)

	feed.Merge(msg("mine", "viewer", time.Now()))
	assert.Never(t, func() bool { return rec.count() > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	feed.Merge(msg("theirs", "other", time.Now()))
	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestMergeMarkReadFailureIsSwallowed(t *testing.T) {
	rec := &readRecorder{err: errors.New("unreachable")}
	feed := NewMessageFeed("chat-1", "viewer", rec.markRead)
	feed.ApplyFetch(nil, nil)

	assert.True(t, feed.Merge(msg("theirs", "other", time.Now())))
	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, feed.Len())
}

func TestReloadKeepsPushedMessages(t *testing.T) {
	base := time.Now()
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch([]*entity.Message{msg("a", "viewer", base)}, nil)
	feed.Merge(msg("pushed", "other", base.Add(3*time.Second)))

	feed.Reload([]*entity.Message{
		msg("a", "viewer", base),
		msg("b", "viewer", base.Add(time.Second)),
	})

	got := feed.Messages()
	require.Len(t, got, 3)
	assert.Equal(t, "pushed", got[2].ID)
}

func TestComposerKeepsDraftOnFailure(t *testing.T) {
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch(nil, nil)

	send := func(ctx context.Context, chatID, content string) error {
		return errors.New("send failed")
	}
	fetch := func(ctx context.Context, chatID string) ([]*entity.Message, error) {
		t.Fatal("fetch must not run after a failed send")
		return nil, nil
	}

	composer := NewComposer(feed, send, fetch)
	composer.SetDraft("  still mine  ")

	err := composer.Send(context.Background())
	require.Error(t, err)
	assert.Equal(t, "  still mine  ", composer.Draft())
}

func TestComposerClearsDraftAndReloadsOnSuccess(t *testing.T) {
	base := time.Now()
	feed := NewMessageFeed("chat-1", "viewer", nil)
	feed.ApplyFetch(nil, nil)

	var sent string
	send := func(ctx context.Context, chatID, content string) error {
		sent = content
		return nil
	}
	fetch := func(ctx context.Context, chatID string) ([]*entity.Message, error) {
		return []*entity.Message{msg("a", "viewer", base)}, nil
	}

	composer := NewComposer(feed, send, fetch)
	composer.SetDraft("  hello there  ")

	require.NoError(t, composer.Send(context.Background()))
	assert.Equal(t, "hello there", sent)
	assert.Empty(t, composer.Draft())
	assert.Equal(t, 1, feed.Len())
}

func TestComposerIgnoresEmptyDraft(t *testing.T) {
	feed := NewMessageFeed("chat-1", "viewer", nil)
	composer := NewComposer(feed, func(ctx context.Context, chatID, content string) error {
		t.Fatal("send must not run for an empty draft")
		return nil
	}, nil)

	composer.SetDraft("   ")
	assert.NoError(t, composer.Send(context.Background()))
}
