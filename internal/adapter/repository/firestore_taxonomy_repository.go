package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		doc := r.client.Collection("categories").NewDoc()
		category.ID = doc.ID
	}

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.client.Collection("categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to create category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection("categories").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Category", err)
		}
		return nil, errors.Internal("Failed to get category", err)
	}

	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}

	return &category, nil
}

func (r *firestoreCategoryRepository) ListForOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	// System categories have an empty ownerId and are visible to everyone.
	var categories []*entity.Category

	for _, owner := range []string{"", ownerID} {
		iter := r.client.Collection("categories").Query.Where("ownerId", "==", owner).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to iterate categories", err)
			}

			var category entity.Category
			if err := doc.DataTo(&category); err != nil {
				return nil, errors.Internal("Failed to parse category data", err)
			}
			categories = append(categories, &category)
		}
	}

	return categories, nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now()

	_, err := r.client.Collection("categories").Doc(category.ID).Set(ctx, category)
	if err != nil {
		return errors.Internal("Failed to update category", err)
	}

	return nil
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("categories").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete category", err)
	}
	return nil
}

type firestoreLocationRepository struct {
	client *firestore.Client
}

func NewFirestoreLocationRepository(client *firestore.Client) repository.LocationRepository {
	return &firestoreLocationRepository{
		client: client,
	}
}

func (r *firestoreLocationRepository) Create(ctx context.Context, location *entity.Location) error {
	if location.ID == "" {
		doc := r.client.Collection("locations").NewDoc()
		location.ID = doc.ID
	}

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now

	_, err := r.client.Collection("locations").Doc(location.ID).Set(ctx, location)
	if err != nil {
		return errors.Internal("Failed to create location", err)
	}

	return nil
}

func (r *firestoreLocationRepository) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	doc, err := r.client.Collection("locations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Location", err)
		}
		return nil, errors.Internal("Failed to get location", err)
	}

	var location entity.Location
	if err := doc.DataTo(&location); err != nil {
		return nil, errors.Internal("Failed to parse location data", err)
	}

	return &location, nil
}

func (r *firestoreLocationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Location, error) {
	iter := r.client.Collection("locations").Query.
		Where("ownerId", "==", ownerID).
		OrderBy("path", firestore.Asc).
		Documents(ctx)

	var locations []*entity.Location
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate locations", err)
		}

		var location entity.Location
		if err := doc.DataTo(&location); err != nil {
			return nil, errors.Internal("Failed to parse location data", err)
		}
		locations = append(locations, &location)
	}

	return locations, nil
}

func (r *firestoreLocationRepository) ListByParent(ctx context.Context, ownerID, parentID string) ([]*entity.Location, error) {
	iter := r.client.Collection("locations").Query.
		Where("ownerId", "==", ownerID).
		Where("parentId", "==", parentID).
		Documents(ctx)

	var locations []*entity.Location
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate locations", err)
		}

		var location entity.Location
		if err := doc.DataTo(&location); err != nil {
			return nil, errors.Internal("Failed to parse location data", err)
		}
		locations = append(locations, &location)
	}

	return locations, nil
}

func (r *firestoreLocationRepository) Update(ctx context.Context, location *entity.Location) error {
	location.UpdatedAt = time.Now()

	_, err := r.client.Collection("locations").Doc(location.ID).Set(ctx, location)
	if err != nil {
		return errors.Internal("Failed to update location", err)
	}

	return nil
}

func (r *firestoreLocationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("locations").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete location", err)
	}
	return nil
}
