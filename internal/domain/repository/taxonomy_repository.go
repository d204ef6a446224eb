package repository

import (
	"context"

	"barangku/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// ListForOwner returns system categories plus the owner's own.
	ListForOwner(ctx context.Context, ownerID string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Location, error)
	ListByParent(ctx context.Context, ownerID, parentID string) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id string) error
}
