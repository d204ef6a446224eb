package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
	"barangku/pkg/errors"
)

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) ListForOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Category
	for _, category := range r.categories {
		if category.OwnerID == "" || category.OwnerID == ownerID {
			copied := *category
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[string]*entity.Location{}}
}

func (r *fakeLocationRepo) Create(ctx context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	location, ok := r.locations[id]
	if !ok {
		return nil, errors.NotFound("Location", nil)
	}
	copied := *location
	return &copied, nil
}

func (r *fakeLocationRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Location
	for _, location := range r.locations {
		if location.OwnerID == ownerID {
			copied := *location
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) ListByParent(ctx context.Context, ownerID, parentID string) ([]*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Location
	for _, location := range r.locations {
		if location.OwnerID == ownerID && location.ParentID == parentID {
			copied := *location
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) Update(ctx context.Context, location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locations, id)
	return nil
}

func newTaxonomyFixture() (*TaxonomyUseCase, *fakeCategoryRepo, *fakeLocationRepo) {
	categoryRepo := newFakeCategoryRepo()
	locationRepo := newFakeLocationRepo()
	return NewTaxonomyUseCase(categoryRepo, locationRepo), categoryRepo, locationRepo
}

func TestCreateLocationMaterializesPath(t *testing.T) {
	uc, _, _ := newTaxonomyFixture()
	ctx := context.Background()

	garage, err := uc.CreateLocation(ctx, "owner-1", "Garage", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Garage", garage.Path)

	shelf, err := uc.CreateLocation(ctx, "owner-1", "Shelf A", garage.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Garage / Shelf A", shelf.Path)
}

func TestRenameLocationRewritesSubtreePaths(t *testing.T) {
	uc, _, locationRepo := newTaxonomyFixture()
	ctx := context.Background()

	garage, err := uc.CreateLocation(ctx, "owner-1", "Garage", "", "")
	require.NoError(t, err)
	shelf, err := uc.CreateLocation(ctx, "owner-1", "Shelf A", garage.ID, "")
	require.NoError(t, err)
	box, err := uc.CreateLocation(ctx, "owner-1", "Box 3", shelf.ID, "")
	require.NoError(t, err)

	name := "Workshop"
	_, err = uc.UpdateLocation(ctx, "owner-1", garage.ID, UpdateLocationInput{Name: &name})
	require.NoError(t, err)

	updatedShelf, err := locationRepo.GetByID(ctx, shelf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Workshop / Shelf A", updatedShelf.Path)

	updatedBox, err := locationRepo.GetByID(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, "Workshop / Shelf A / Box 3", updatedBox.Path)
}

func TestReparentLocationRejectsCycles(t *testing.T) {
	uc, _, _ := newTaxonomyFixture()
	ctx := context.Background()

	garage, err := uc.CreateLocation(ctx, "owner-1", "Garage", "", "")
	require.NoError(t, err)
	shelf, err := uc.CreateLocation(ctx, "owner-1", "Shelf A", garage.ID, "")
	require.NoError(t, err)

	_, err = uc.UpdateLocation(ctx, "owner-1", garage.ID, UpdateLocationInput{ParentID: &shelf.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.UpdateLocation(ctx, "owner-1", garage.ID, UpdateLocationInput{ParentID: &garage.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestDeleteLocationGuardsItemsAndChildren(t *testing.T) {
	uc, _, locationRepo := newTaxonomyFixture()
	ctx := context.Background()

	garage, err := uc.CreateLocation(ctx, "owner-1", "Garage", "", "")
	require.NoError(t, err)
	shelf, err := uc.CreateLocation(ctx, "owner-1", "Shelf A", garage.ID, "")
	require.NoError(t, err)

	err = uc.DeleteLocation(ctx, "owner-1", garage.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored, err := locationRepo.GetByID(ctx, shelf.ID)
	require.NoError(t, err)
	stored.ItemCount = 2
	require.NoError(t, locationRepo.Update(ctx, stored))

	err = uc.DeleteLocation(ctx, "owner-1", shelf.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored.ItemCount = 0
	require.NoError(t, locationRepo.Update(ctx, stored))
	assert.NoError(t, uc.DeleteLocation(ctx, "owner-1", shelf.ID))
	assert.NoError(t, uc.DeleteLocation(ctx, "owner-1", garage.ID))
}

func TestSystemCategoryIsImmutable(t *testing.T) {
	uc, categoryRepo, _ := newTaxonomyFixture()
	ctx := context.Background()

	system := &entity.Category{Name: "Electronics"}
	require.NoError(t, categoryRepo.Create(ctx, system))

	name := "Gadgets"
	_, err := uc.UpdateCategory(ctx, "owner-1", system.ID, &name, nil)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = uc.DeleteCategory(ctx, "owner-1", system.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteCategoryWithItemsConflicts(t *testing.T) {
	uc, categoryRepo, _ := newTaxonomyFixture()
	ctx := context.Background()

	category, err := uc.CreateCategory(ctx, "owner-1", "Tools", "")
	require.NoError(t, err)

	stored, err := categoryRepo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	stored.ItemCount = 1
	require.NoError(t, categoryRepo.Update(ctx, stored))

	err = uc.DeleteCategory(ctx, "owner-1", category.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}
