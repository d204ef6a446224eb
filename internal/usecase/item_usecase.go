package usecase

import (
	"context"
	"sync"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/internal/imaging"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

// UndoWindow is how long a deleted item can be brought back from the toast.
const UndoWindow = 5 * time.Second

type ItemUseCase struct {
	itemRepo repository.ItemRepository
	uploader PhotoUploader

	retention time.Duration

	undoMu sync.Mutex
	undo   map[string]time.Time // itemID -> undo deadline
	now    func() time.Time
}

func NewItemUseCase(itemRepo repository.ItemRepository, uploader PhotoUploader, retention time.Duration) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:  itemRepo,
		uploader:  uploader,
		retention: retention,
		undo:      make(map[string]time.Time),
		now:       time.Now,
	}
}

type CreateItemInput struct {
	Name         string
	Description  string
	CategoryID   string
	LocationID   string
	Tags         []string
	Quantity     int
	Price        *float64
	Currency     string
	PurchaseDate *time.Time
	ExpireDate   *time.Time
	WarrantyDate *time.Time
	ReminderDate *time.Time
	KeepForever  bool
	Detection    *entity.Detection
}

func (uc *ItemUseCase) Create(ctx context.Context, ownerID string, input CreateItemInput) (*entity.Item, error) {
	if input.Name == "" {
		return nil, errors.BadRequest("Item name is required", nil)
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	now := uc.now()
	item := &entity.Item{
		OwnerID:      ownerID,
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		LocationID:   input.LocationID,
		Tags:         input.Tags,
		Quantity:     quantity,
		Price:        input.Price,
		Currency:     input.Currency,
		PurchaseDate: input.PurchaseDate,
		ExpireDate:   input.ExpireDate,
		WarrantyDate: input.WarrantyDate,
		ReminderDate: input.ReminderDate,
		KeepForever:  input.KeepForever,
		Detection:    input.Detection,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, errors.Internal("Failed to create item", err)
	}
	return item, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, ownerID, itemID string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, errors.NotFound("Item", err)
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have access to this item", nil)
	}
	if item.IsDeleted() {
		return nil, errors.NotFound("Item", nil)
	}
	return item, nil
}

func (uc *ItemUseCase) List(ctx context.Context, ownerID string, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	items, total, err := uc.itemRepo.ListByOwner(ctx, ownerID, filter, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list items", err)
	}
	return items, total, nil
}

type UpdateItemInput struct {
	Name         *string
	Description  *string
	CategoryID   *string
	LocationID   *string
	Tags         []string
	Quantity     *int
	Price        *float64
	Currency     *string
	PurchaseDate *time.Time
	ExpireDate   *time.Time
	WarrantyDate *time.Time
	ReminderDate *time.Time
	Favorite     *bool
	KeepForever  *bool
}

func (uc *ItemUseCase) Update(ctx context.Context, ownerID, itemID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := uc.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, errors.BadRequest("Item name is required", nil)
		}
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.CategoryID != nil {
		item.CategoryID = *input.CategoryID
	}
	if input.LocationID != nil {
		item.LocationID = *input.LocationID
	}
	if input.Tags != nil {
		item.Tags = input.Tags
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, errors.BadRequest("Quantity must be positive", nil)
		}
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		item.Price = input.Price
	}
	if input.Currency != nil {
		item.Currency = *input.Currency
	}
	if input.PurchaseDate != nil {
		item.PurchaseDate = input.PurchaseDate
	}
	if input.ExpireDate != nil {
		item.ExpireDate = input.ExpireDate
	}
	if input.WarrantyDate != nil {
		item.WarrantyDate = input.WarrantyDate
	}
	if input.ReminderDate != nil {
		item.ReminderDate = input.ReminderDate
	}
	if input.Favorite != nil {
		item.Favorite = *input.Favorite
	}
	if input.KeepForever != nil {
		item.KeepForever = *input.KeepForever
	}
	item.UpdatedAt = uc.now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, errors.Internal("Failed to update item", err)
	}
	return item, nil
}

// AttachPhoto compresses the raw upload, builds the square thumbnail, stores
// both, and points the item at the new URLs. The previous photo is removed
// best-effort.
func (uc *ItemUseCase) AttachPhoto(ctx context.Context, ownerID, itemID string, raw []byte) (*entity.Item, error) {
	item, err := uc.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	photo, err := imaging.Compress(raw, imaging.MaxBytes)
	if err != nil {
		return nil, err
	}
	thumb, err := imaging.Thumbnail(raw)
	if err != nil {
		return nil, err
	}

	photoURL, thumbURL, err := uc.uploader.UploadItemPhoto(ctx, ownerID, photo.Data, thumb.Data)
	if err != nil {
		return nil, errors.Internal("Failed to upload photo", err)
	}

	oldPhoto, oldThumb := item.PhotoURL, item.ThumbnailURL
	item.PhotoURL = photoURL
	item.ThumbnailURL = thumbURL
	item.UpdatedAt = uc.now()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, errors.Internal("Failed to update item", err)
	}

	if oldPhoto != "" {
		go func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := uc.uploader.DeleteFile(cleanupCtx, oldPhoto); err != nil {
				logger.SideEffect("delete_old_photo", err)
			}
			if oldThumb != "" {
				if err := uc.uploader.DeleteFile(cleanupCtx, oldThumb); err != nil {
					logger.SideEffect("delete_old_thumbnail", err)
				}
			}
		}()
	}

	return item, nil
}

// Delete soft-deletes the item and opens the undo window. The item keeps all
// of its fields so an undo restores it exactly as it was.
func (uc *ItemUseCase) Delete(ctx context.Context, ownerID, itemID string) error {
	item, err := uc.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return err
	}

	now := uc.now()
	if err := uc.itemRepo.SoftDelete(ctx, item.ID, now); err != nil {
		return errors.Internal("Failed to delete item", err)
	}

	uc.undoMu.Lock()
	for id, deadline := range uc.undo {
		if now.After(deadline) {
			delete(uc.undo, id)
		}
	}
	uc.undo[item.ID] = now.Add(UndoWindow)
	uc.undoMu.Unlock()

	return nil
}

// Undo restores a just-deleted item. After the window has passed the call has
// no effect and reports the window as closed.
func (uc *ItemUseCase) Undo(ctx context.Context, ownerID, itemID string) (*entity.Item, error) {
	uc.undoMu.Lock()
	deadline, ok := uc.undo[itemID]
	if ok {
		delete(uc.undo, itemID)
	}
	uc.undoMu.Unlock()

	if !ok || uc.now().After(deadline) {
		return nil, errors.BadRequest("Undo window has closed", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, errors.NotFound("Item", err)
	}
	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have access to this item", nil)
	}

	restored, err := uc.itemRepo.Restore(ctx, itemID)
	if err != nil {
		return nil, errors.Internal("Failed to restore item", err)
	}
	return restored, nil
}

// PurgeExpired hard-deletes soft-deleted items older than the retention
// period, along with their stored photos. Returns how many were removed.
func (uc *ItemUseCase) PurgeExpired(ctx context.Context) (int, error) {
	cutoff := uc.now().Add(-uc.retention)
	items, err := uc.itemRepo.ListDeletedBefore(ctx, cutoff, 100)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, item := range items {
		if item.PhotoURL != "" {
			if err := uc.uploader.DeleteFile(ctx, item.PhotoURL); err != nil {
				logger.SideEffect("purge_photo", err)
			}
		}
		if item.ThumbnailURL != "" {
			if err := uc.uploader.DeleteFile(ctx, item.ThumbnailURL); err != nil {
				logger.SideEffect("purge_thumbnail", err)
			}
		}
		if err := uc.itemRepo.HardDelete(ctx, item.ID); err != nil {
			logger.Error("failed to purge item %s: %v", item.ID, err)
			continue
		}
		purged++
	}
	return purged, nil
}

// StartRetentionJanitor purges expired soft-deleted items on a fixed cadence
// until ctx is cancelled.
func (uc *ItemUseCase) StartRetentionJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n, err := uc.PurgeExpired(ctx); err != nil {
					logger.Error("retention purge failed: %v", err)
				} else if n > 0 {
					logger.Info("retention purge removed %d items", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
