package repository

import (
	"context"
	"time"

	"barangku/internal/domain/entity"
)

// ItemFilter narrows default item queries. Soft-deleted items are always
// excluded unless a method says otherwise.
type ItemFilter struct {
	CategoryID string
	LocationID string
	Tag        string
	Favorite   *bool
	Search     string
}

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID returns the item even when soft-deleted; callers decide
	// whether a deleted item is visible.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListByOwner(ctx context.Context, ownerID string, filter ItemFilter, limit, offset int) ([]*entity.Item, int64, error)
	Update(ctx context.Context, item *entity.Item) error

	// SoftDelete stamps deletedAt and decrements category/location item
	// counts in the same transaction. Already-deleted items are a no-op.
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// Restore clears deletedAt and re-increments the counts transactionally.
	Restore(ctx context.Context, id string) (*entity.Item, error)

	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Item, error)
	HardDelete(ctx context.Context, id string) error
}
