package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
	"barangku/internal/livefeed"
	"barangku/pkg/errors"
)

func newNotificationFixture() (*NotificationUseCase, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{}
	return NewNotificationUseCase(repo, nil), repo
}

func TestCreateRejectsUnknownType(t *testing.T) {
	uc, _ := newNotificationFixture()

	_, err := uc.Create(context.Background(), "user-1", "party_invite", "t", "b", nil)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMarkReadIsIdempotent(t *testing.T) {
	uc, _ := newNotificationFixture()
	ctx := context.Background()

	n, err := uc.Create(ctx, "user-1", entity.NotificationTypeMessage, "New message", "hi", nil)
	require.NoError(t, err)

	require.NoError(t, uc.MarkRead(ctx, "user-1", n.ID))
	require.NoError(t, uc.MarkRead(ctx, "user-1", n.ID))
}

func TestMarkReadChecksOwnership(t *testing.T) {
	uc, _ := newNotificationFixture()
	ctx := context.Background()

	n, err := uc.Create(ctx, "user-1", entity.NotificationTypeMessage, "t", "b", nil)
	require.NoError(t, err)

	err = uc.MarkRead(ctx, "intruder", n.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDismissRemovesNotification(t *testing.T) {
	uc, repo := newNotificationFixture()
	ctx := context.Background()

	n, err := uc.Create(ctx, "user-1", entity.NotificationTypeMessage, "t", "b", nil)
	require.NoError(t, err)

	require.NoError(t, uc.Dismiss(ctx, "user-1", n.ID))
	assert.Equal(t, 0, repo.count("user-1"))

	err = uc.Dismiss(ctx, "user-1", n.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListSplitsTabsAndCountsUnread(t *testing.T) {
	uc, _ := newNotificationFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", entity.NotificationTypeMessage, "m", "", nil)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "user-1", entity.NotificationTypeExpireReminder, "r", "", nil)
	require.NoError(t, err)

	all, err := uc.List(ctx, "user-1", "", 20, 0, time.UTC)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Equal(t, 1, all.UnreadMessage)
	assert.Equal(t, 1, all.UnreadReminder)

	reminders, err := uc.List(ctx, "user-1", entity.NotificationClassReminder, 20, 0, time.UTC)
	require.NoError(t, err)
	assert.EqualValues(t, 1, reminders.Total)
}

func TestListBucketsByCalendarDay(t *testing.T) {
	uc, repo := newNotificationFixture()
	ctx := context.Background()

	now := time.Now().UTC()
	repo.Create(ctx, &entity.Notification{
		UserID: "user-1", Type: entity.NotificationTypeMessage, Title: "today", CreatedAt: now,
	})
	repo.Create(ctx, &entity.Notification{
		UserID: "user-1", Type: entity.NotificationTypeMessage, Title: "ancient", CreatedAt: now.AddDate(0, -1, 0),
	})

	page, err := uc.List(ctx, "user-1", "", 20, 0, time.UTC)
	require.NoError(t, err)
	require.Len(t, page.Buckets, 2)
	assert.Equal(t, livefeed.BucketToday, page.Buckets[0].Label)
	assert.Equal(t, livefeed.BucketEarlier, page.Buckets[1].Label)
}

func TestListRejectsUnknownTab(t *testing.T) {
	uc, _ := newNotificationFixture()

	_, err := uc.List(context.Background(), "user-1", "spam", 20, 0, time.UTC)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
