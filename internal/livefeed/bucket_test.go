package livefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
)

func notif(id string, at time.Time) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		UserID:    "user-1",
		Type:      entity.NotificationTypeMessage,
		Title:     "t",
		CreatedAt: at,
	}
}

func TestBucketingUsesCalendarDaysNotRollingWindow(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 28, 1, 0, 0, 0, loc)

	lateYesterday := time.Date(2026, 8, 27, 23, 59, 0, 0, loc)
	earlyToday := time.Date(2026, 8, 28, 0, 1, 0, 0, loc)

	buckets := BucketNotifications([]*entity.Notification{
		notif("today", earlyToday),
		notif("yesterday", lateYesterday),
	}, now, loc)

	require.Len(t, buckets, 2)
	assert.Equal(t, BucketToday, buckets[0].Label)
	assert.Equal(t, "today", buckets[0].Notifications[0].ID)
	assert.Equal(t, BucketYesterday, buckets[1].Label)
	assert.Equal(t, "yesterday", buckets[1].Notifications[0].ID)
}

func TestBucketingWeekAndEarlier(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, loc)

	buckets := BucketNotifications([]*entity.Notification{
		notif("this-week", now.AddDate(0, 0, -5)),
		notif("earlier", now.AddDate(0, 0, -10)),
	}, now, loc)

	require.Len(t, buckets, 2)
	assert.Equal(t, BucketThisWeek, buckets[0].Label)
	assert.Equal(t, BucketEarlier, buckets[1].Label)
}

func TestBucketingPreservesOrderWithinBucket(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, loc)

	// Server order is newest-first; the bucket must not re-sort.
	buckets := BucketNotifications([]*entity.Notification{
		notif("n2", now.Add(-1*time.Hour)),
		notif("n1", now.Add(-2*time.Hour)),
		notif("n3", now.Add(-30*time.Minute)),
	}, now, loc)

	require.Len(t, buckets, 1)
	ids := []string{}
	for _, n := range buckets[0].Notifications {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"n2", "n1", "n3"}, ids)
}

func TestBucketingOmitsEmptyBuckets(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, loc)

	buckets := BucketNotifications([]*entity.Notification{
		notif("old", now.AddDate(0, -2, 0)),
	}, now, loc)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketEarlier, buckets[0].Label)
}

func TestBucketBoundaryRespectsTimeZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 23:30 UTC on the 27th is already the 28th in Jakarta.
	now := time.Date(2026, 8, 28, 6, 0, 0, 0, jakarta)
	late := time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)

	buckets := BucketNotifications([]*entity.Notification{notif("n", late)}, now, jakarta)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketToday, buckets[0].Label)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", RelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "1 minute ago", RelativeTime(now.Add(-90*time.Second), now))
	assert.Equal(t, "5 minutes ago", RelativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", RelativeTime(now.Add(-49*time.Hour), now))
}
