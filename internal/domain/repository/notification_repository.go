package repository

import (
	"context"

	"barangku/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	// ListByUser returns notifications newest-first, optionally filtered to a
	// display class ("message" or "reminder").
	ListByUser(ctx context.Context, userID, class string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
