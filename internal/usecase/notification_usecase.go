package usecase

import (
	"context"
	"encoding/json"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/internal/infrastructure/websocket"
	"barangku/internal/livefeed"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	broadcaster      Broadcaster
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, broadcaster Broadcaster) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
	}
}

// Create stores a notification and pushes it to the recipient's socket.
func (uc *NotificationUseCase) Create(ctx context.Context, userID, notificationType, title, body string, customize func(*entity.Notification)) (*entity.Notification, error) {
	if !entity.ValidNotificationType(notificationType) {
		return nil, errors.BadRequest("Invalid notification type", nil)
	}

	notification := &entity.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if customize != nil {
		customize(notification)
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Internal("Failed to create notification", err)
	}

	uc.push(notification)
	return notification, nil
}

// NotifyAsync creates the notification off the caller's critical path.
// Failures are logged, never surfaced.
func (uc *NotificationUseCase) NotifyAsync(userID, notificationType, title, body string, customize func(*entity.Notification)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := uc.Create(ctx, userID, notificationType, title, body, customize); err != nil {
			logger.SideEffect("create_notification", err)
		}
	}()
}

func (uc *NotificationUseCase) push(notification *entity.Notification) {
	if uc.broadcaster == nil {
		return
	}
	payload, err := json.Marshal(websocket.WSMessage{
		Type:      websocket.MessageTypeNotification,
		Data:      notification,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("failed to marshal notification push: %v", err)
		return
	}
	uc.broadcaster.SendToUser(notification.UserID, payload)
}

// NotificationPage is one tab's worth of notifications, pre-bucketed for
// display with per-class unread counts recomputed from the list.
type NotificationPage struct {
	Buckets        []livefeed.NotificationBucket `json:"buckets"`
	Total          int64                         `json:"total"`
	UnreadMessage  int                           `json:"unread_message"`
	UnreadReminder int                           `json:"unread_reminder"`
}

// List returns notifications newest-first for one display class ("message",
// "reminder", or empty for all), grouped into calendar-day buckets.
func (uc *NotificationUseCase) List(ctx context.Context, userID, class string, limit, offset int, loc *time.Location) (*NotificationPage, error) {
	switch class {
	case "", entity.NotificationClassMessage, entity.NotificationClassReminder:
	default:
		return nil, errors.BadRequest("Invalid notification class", nil)
	}

	notifications, total, err := uc.notificationRepo.ListByUser(ctx, userID, class, limit, offset)
	if err != nil {
		return nil, errors.Internal("Failed to list notifications", err)
	}

	page := &NotificationPage{
		Buckets: livefeed.BucketNotifications(notifications, time.Now(), loc),
		Total:   total,
	}
	for _, n := range notifications {
		if n.Read {
			continue
		}
		if entity.NotificationClass(n.Type) == entity.NotificationClassReminder {
			page.UnreadReminder++
		} else {
			page.UnreadMessage++
		}
	}
	return page, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.owned(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if notification.Read {
		return nil
	}
	if err := uc.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	if err := uc.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}
	return nil
}

// Dismiss removes a notification, the backing operation for swipe-dismiss.
func (uc *NotificationUseCase) Dismiss(ctx context.Context, userID, notificationID string) error {
	if _, err := uc.owned(ctx, userID, notificationID); err != nil {
		return err
	}
	if err := uc.notificationRepo.Delete(ctx, notificationID); err != nil {
		return errors.Internal("Failed to dismiss notification", err)
	}
	return nil
}

func (uc *NotificationUseCase) owned(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, errors.NotFound("Notification", err)
	}
	if notification.UserID != userID {
		return nil, errors.Forbidden("You don't have access to this notification", nil)
	}
	return notification, nil
}
