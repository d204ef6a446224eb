package usecase

import (
	"context"
	"strings"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type TaxonomyUseCase struct {
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

func NewTaxonomyUseCase(categoryRepo repository.CategoryRepository, locationRepo repository.LocationRepository) *TaxonomyUseCase {
	return &TaxonomyUseCase{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

func (uc *TaxonomyUseCase) ListCategories(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Internal("Failed to list categories", err)
	}
	return categories, nil
}

func (uc *TaxonomyUseCase) CreateCategory(ctx context.Context, ownerID, name, icon string) (*entity.Category, error) {
	if name == "" {
		return nil, errors.BadRequest("Category name is required", nil)
	}

	now := time.Now()
	category := &entity.Category{
		OwnerID:   ownerID,
		Name:      name,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Internal("Failed to create category", err)
	}
	return category, nil
}

func (uc *TaxonomyUseCase) UpdateCategory(ctx context.Context, ownerID, categoryID string, name, icon *string) (*entity.Category, error) {
	category, err := uc.ownedCategory(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, errors.BadRequest("Category name is required", nil)
		}
		category.Name = *name
	}
	if icon != nil {
		category.Icon = *icon
	}
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Internal("Failed to update category", err)
	}
	return category, nil
}

func (uc *TaxonomyUseCase) ownedCategory(ctx context.Context, ownerID, categoryID string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, errors.NotFound("Category", err)
	}
	if category.OwnerID == "" {
		return nil, errors.Forbidden("System categories cannot be changed", nil)
	}
	if category.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have access to this category", nil)
	}
	return category, nil
}

func (uc *TaxonomyUseCase) ownedLocation(ctx context.Context, ownerID, locationID string) (*entity.Location, error) {
	location, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, errors.NotFound("Location", err)
	}
	if location.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have access to this location", nil)
	}
	return location, nil
}

func (uc *TaxonomyUseCase) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	category, err := uc.ownedCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if category.ItemCount > 0 {
		return errors.Conflict("Category still contains items")
	}
	return uc.categoryRepo.Delete(ctx, categoryID)
}

func (uc *TaxonomyUseCase) ListLocations(ctx context.Context, ownerID string) ([]*entity.Location, error) {
	locations, err := uc.locationRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Internal("Failed to list locations", err)
	}
	return locations, nil
}

// CreateLocation places the new location under parentID and materializes its
// display path from the parent chain.
func (uc *TaxonomyUseCase) CreateLocation(ctx context.Context, ownerID, name, parentID, icon string) (*entity.Location, error) {
	if name == "" {
		return nil, errors.BadRequest("Location name is required", nil)
	}

	path := name
	if parentID != "" {
		parent, err := uc.locationRepo.GetByID(ctx, parentID)
		if err != nil {
			return nil, errors.NotFound("Parent location", err)
		}
		if parent.OwnerID != ownerID {
			return nil, errors.Forbidden("You don't have access to this location", nil)
		}
		path = parent.Path + " / " + name
	}

	now := time.Now()
	location := &entity.Location{
		OwnerID:   ownerID,
		Name:      name,
		ParentID:  parentID,
		Path:      path,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, errors.Internal("Failed to create location", err)
	}
	return location, nil
}

type UpdateLocationInput struct {
	Name     *string
	ParentID *string
	Icon     *string
}

// UpdateLocation renames or re-parents a location and rewrites the
// materialized paths of its whole subtree.
func (uc *TaxonomyUseCase) UpdateLocation(ctx context.Context, ownerID, locationID string, input UpdateLocationInput) (*entity.Location, error) {
	location, err := uc.ownedLocation(ctx, ownerID, locationID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, errors.BadRequest("Location name is required", nil)
		}
		location.Name = *input.Name
	}
	if input.Icon != nil {
		location.Icon = *input.Icon
	}

	parentPath := ""
	if input.ParentID != nil {
		if *input.ParentID == locationID {
			return nil, errors.BadRequest("A location cannot contain itself", nil)
		}
		location.ParentID = *input.ParentID
	}
	if location.ParentID != "" {
		parent, err := uc.ownedLocation(ctx, ownerID, location.ParentID)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(parent.Path+" / ", location.Path+" / ") {
			return nil, errors.BadRequest("A location cannot be moved under its own sub-location", nil)
		}
		parentPath = parent.Path + " / "
	}

	location.Path = parentPath + location.Name
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(ctx, location); err != nil {
		return nil, errors.Internal("Failed to update location", err)
	}

	if err := uc.rewriteChildPaths(ctx, ownerID, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (uc *TaxonomyUseCase) rewriteChildPaths(ctx context.Context, ownerID string, parent *entity.Location) error {
	children, err := uc.locationRepo.ListByParent(ctx, ownerID, parent.ID)
	if err != nil {
		return errors.Internal("Failed to list sub-locations", err)
	}
	for _, child := range children {
		child.Path = parent.Path + " / " + child.Name
		child.UpdatedAt = time.Now()
		if err := uc.locationRepo.Update(ctx, child); err != nil {
			return errors.Internal("Failed to update sub-location", err)
		}
		if err := uc.rewriteChildPaths(ctx, ownerID, child); err != nil {
			return err
		}
	}
	return nil
}

func (uc *TaxonomyUseCase) DeleteLocation(ctx context.Context, ownerID, locationID string) error {
	location, err := uc.ownedLocation(ctx, ownerID, locationID)
	if err != nil {
		return err
	}
	if location.ItemCount > 0 {
		return errors.Conflict("Location still contains items")
	}

	children, err := uc.locationRepo.ListByParent(ctx, ownerID, locationID)
	if err != nil {
		return errors.Internal("Failed to check child locations", err)
	}
	if len(children) > 0 {
		return errors.Conflict("Location still contains sub-locations")
	}

	return uc.locationRepo.Delete(ctx, locationID)
}
