package livefeed

import (
	"strconv"
	"time"

	"barangku/internal/domain/entity"
)

// Bucket labels for the notification list, in display order.
const (
	BucketToday     = "Today"
	BucketYesterday = "Yesterday"
	BucketThisWeek  = "This Week"
	BucketEarlier   = "Earlier"
)

// NotificationBucket is one labeled section of the notification list.
type NotificationBucket struct {
	Label         string
	Notifications []*entity.Notification
}

// BucketNotifications partitions a newest-first notification list into the
// four fixed date buckets without re-sorting within a bucket. Membership is
// decided by local calendar day boundaries in loc, not a rolling 24-hour
// window, so 23:59 and 00:01 the next day land in different buckets. Empty
// buckets are omitted.
func BucketNotifications(notifications []*entity.Notification, now time.Time, loc *time.Location) []NotificationBucket {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	weekStart := today.AddDate(0, 0, -6)

	grouped := map[string][]*entity.Notification{}
	for _, n := range notifications {
		label := bucketLabel(n.CreatedAt.In(loc), today, yesterday, weekStart)
		grouped[label] = append(grouped[label], n)
	}

	var out []NotificationBucket
	for _, label := range []string{BucketToday, BucketYesterday, BucketThisWeek, BucketEarlier} {
		if list := grouped[label]; len(list) > 0 {
			out = append(out, NotificationBucket{Label: label, Notifications: list})
		}
	}
	return out
}

func bucketLabel(at, today, yesterday, weekStart time.Time) string {
	switch {
	case !at.Before(today):
		return BucketToday
	case !at.Before(yesterday):
		return BucketYesterday
	case !at.Before(weekStart):
		return BucketThisWeek
	default:
		return BucketEarlier
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RelativeTime renders a notification timestamp the way the list shows it.
func RelativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}
