package repository

import (
	"context"

	"barangku/internal/domain/entity"
)

type ListingFilter struct {
	Status    string
	PriceType string
	MinPrice  float64
	MaxPrice  float64
	Search    string
	Sort      string // "newest", "price_asc", "price_desc"
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// GetNonTerminalByItemID returns the active or reserved listing wrapping
	// the item, or a NOT_FOUND error when the item is relistable.
	GetNonTerminalByItemID(ctx context.Context, itemID string) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
	ListBySeller(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	// IncrementViews bumps the view counter without a read-modify-write.
	IncrementViews(ctx context.Context, id string) error
}
