package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		doc := r.client.Collection("items").NewDoc()
		item.ID = doc.ID
	}

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(r.client.Collection("items").Doc(item.ID), item); err != nil {
			return errors.Internal("Failed to create item", err)
		}
		return r.adjustCounts(tx, item, 1)
	})
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}

	return &item, nil
}

func (r *firestoreItemRepository) ListByOwner(ctx context.Context, ownerID string, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	query := r.client.Collection("items").Query.
		Where("ownerId", "==", ownerID).
		Where("deletedAt", "==", nil)

	if filter.CategoryID != "" {
		query = query.Where("categoryId", "==", filter.CategoryID)
	}
	if filter.LocationID != "" {
		query = query.Where("locationId", "==", filter.LocationID)
	}
	if filter.Favorite != nil {
		query = query.Where("favorite", "==", *filter.Favorite)
	}
	if filter.Tag != "" {
		query = query.Where("tags", "array-contains", filter.Tag)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list items", err)
	}

	var items []*entity.Item
	for _, doc := range docs {
		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse item data", err)
		}

		// Firestore has no substring search; name matching happens here.
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(filter.Search)) {
			continue
		}

		items = append(items, &item)
	}

	total := int64(len(items))
	items = paginate(items, limit, offset)

	return items, total, nil
}

func (r *firestoreItemRepository) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection("items").Doc(item.ID)

		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Item", err)
			}
			return errors.Internal("Failed to get item", err)
		}

		var previous entity.Item
		if err := doc.DataTo(&previous); err != nil {
			return errors.Internal("Failed to parse item data", err)
		}

		if err := tx.Set(ref, item); err != nil {
			return errors.Internal("Failed to update item", err)
		}

		// Moving an item between categories or locations shifts the counts.
		if !previous.IsDeleted() {
			if previous.CategoryID != item.CategoryID {
				if err := r.adjustCategoryCount(tx, previous.CategoryID, -1); err != nil {
					return err
				}
				if err := r.adjustCategoryCount(tx, item.CategoryID, 1); err != nil {
					return err
				}
			}
			if previous.LocationID != item.LocationID {
				if err := r.adjustLocationCount(tx, previous.LocationID, -1); err != nil {
					return err
				}
				if err := r.adjustLocationCount(tx, item.LocationID, 1); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// SoftDelete stamps deletedAt and keeps the category/location counts in step
// inside the same transaction, so a crash between the two writes cannot leave
// the counts drifted.
func (r *firestoreItemRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection("items").Doc(id)

		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Item", err)
			}
			return errors.Internal("Failed to get item", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return errors.Internal("Failed to parse item data", err)
		}

		if item.IsDeleted() {
			return nil
		}

		item.DeletedAt = &at
		item.UpdatedAt = at

		if err := tx.Set(ref, &item); err != nil {
			return errors.Internal("Failed to soft delete item", err)
		}
		return r.adjustCounts(tx, &item, -1)
	})
}

func (r *firestoreItemRepository) Restore(ctx context.Context, id string) (*entity.Item, error) {
	var restored *entity.Item

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection("items").Doc(id)

		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Item", err)
			}
			return errors.Internal("Failed to get item", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return errors.Internal("Failed to parse item data", err)
		}

		if !item.IsDeleted() {
			restored = &item
			return nil
		}

		item.DeletedAt = nil
		item.UpdatedAt = time.Now()

		if err := tx.Set(ref, &item); err != nil {
			return errors.Internal("Failed to restore item", err)
		}
		restored = &item
		return r.adjustCounts(tx, &item, 1)
	})
	if err != nil {
		return nil, err
	}

	return restored, nil
}

func (r *firestoreItemRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Item, error) {
	query := r.client.Collection("items").Query.
		Where("deletedAt", "<", cutoff).
		OrderBy("deletedAt", firestore.Asc).
		Limit(limit)

	iter := query.Documents(ctx)
	var items []*entity.Item

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate deleted items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse item data", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *firestoreItemRepository) HardDelete(ctx context.Context, id string) error {
	_, err := r.client.Collection("items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete item", err)
	}
	return nil
}

func (r *firestoreItemRepository) adjustCounts(tx *firestore.Transaction, item *entity.Item, delta int) error {
	if err := r.adjustCategoryCount(tx, item.CategoryID, delta); err != nil {
		return err
	}
	return r.adjustLocationCount(tx, item.LocationID, delta)
}

func (r *firestoreItemRepository) adjustCategoryCount(tx *firestore.Transaction, categoryID string, delta int) error {
	if categoryID == "" {
		return nil
	}
	ref := r.client.Collection("categories").Doc(categoryID)
	err := tx.Update(ref, []firestore.Update{
		{Path: "itemCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return errors.Internal("Failed to update category count", err)
	}
	return nil
}

func (r *firestoreItemRepository) adjustLocationCount(tx *firestore.Transaction, locationID string, delta int) error {
	if locationID == "" {
		return nil
	}
	ref := r.client.Collection("locations").Doc(locationID)
	err := tx.Update(ref, []firestore.Update{
		{Path: "itemCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return errors.Internal("Failed to update location count", err)
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
