package usecase

import (
	"context"
	"fmt"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

type ListingUseCase struct {
	listingRepo     repository.ListingRepository
	itemRepo        repository.ItemRepository
	transactionRepo repository.TransactionRepository
	notificationUC  *NotificationUseCase
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	itemRepo repository.ItemRepository,
	transactionRepo repository.TransactionRepository,
	notificationUC *NotificationUseCase,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:     listingRepo,
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
		notificationUC:  notificationUC,
	}
}

type CreateListingInput struct {
	ItemID      string
	Title       string
	Description string
	Price       float64
	PriceType   string
	PhotoURLs   []string
}

// Create publishes an inventory item to the marketplace. An item can back at
// most one active or reserved listing at a time.
func (uc *ListingUseCase) Create(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, errors.NotFound("Item", err)
	}
	if item.OwnerID != sellerID {
		return nil, errors.Forbidden("You can only list your own items", nil)
	}
	if item.IsDeleted() {
		return nil, errors.NotFound("Item", nil)
	}

	existing, err := uc.listingRepo.GetNonTerminalByItemID(ctx, input.ItemID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, errors.Internal("Failed to check existing listings", err)
	}
	if existing != nil {
		return nil, errors.Conflict("Item is already listed")
	}

	if input.Title == "" {
		return nil, errors.BadRequest("Listing title is required", nil)
	}
	switch input.PriceType {
	case entity.PriceTypeFixed, entity.PriceTypeNegotiable:
		if input.Price <= 0 {
			return nil, errors.BadRequest("Price must be positive", nil)
		}
	case entity.PriceTypeFree:
		input.Price = 0
	default:
		return nil, errors.BadRequest("Invalid price type", nil)
	}

	photoURLs := input.PhotoURLs
	if len(photoURLs) == 0 && item.PhotoURL != "" {
		photoURLs = []string{item.PhotoURL}
	}

	now := time.Now()
	listing := &entity.Listing{
		ItemID:      input.ItemID,
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		PriceType:   input.PriceType,
		Status:      entity.ListingStatusActive,
		PhotoURLs:   photoURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, errors.Internal("Failed to create listing", err)
	}
	return listing, nil
}

// GetByID returns the listing and bumps its view counter fire-and-forget for
// viewers other than the seller.
func (uc *ListingUseCase) GetByID(ctx context.Context, viewerID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}

	if viewerID != listing.SellerID {
		go func() {
			viewCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := uc.listingRepo.IncrementViews(viewCtx, listingID); err != nil {
				logger.SideEffect("increment_views", err)
			}
		}()
	}

	return listing, nil
}

func (uc *ListingUseCase) Browse(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	if filter.Status == "" {
		filter.Status = entity.ListingStatusActive
	}
	listings, total, err := uc.listingRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to browse listings", err)
	}
	return listings, total, nil
}

func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	listings, total, err := uc.listingRepo.ListBySeller(ctx, sellerID, status, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list listings", err)
	}
	return listings, total, nil
}

type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *float64
	PriceType   *string
	PhotoURLs   []string
}

func (uc *ListingUseCase) Update(ctx context.Context, sellerID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.ownedListing(ctx, sellerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.IsTerminal() {
		return nil, errors.Conflict("Listing is no longer editable")
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, errors.BadRequest("Listing title is required", nil)
		}
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.PriceType != nil {
		listing.PriceType = *input.PriceType
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if listing.PriceType == entity.PriceTypeFree {
		listing.Price = 0
	} else if listing.Price <= 0 {
		return nil, errors.BadRequest("Price must be positive", nil)
	}
	if input.PhotoURLs != nil {
		listing.PhotoURLs = input.PhotoURLs
	}
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, errors.Internal("Failed to update listing", err)
	}
	return listing, nil
}

// SetStatus moves the listing between active and reserved, or removes it.
// Sold is reached only through MarkSold.
func (uc *ListingUseCase) SetStatus(ctx context.Context, sellerID, listingID, status string) (*entity.Listing, error) {
	switch status {
	case entity.ListingStatusActive, entity.ListingStatusReserved, entity.ListingStatusRemoved:
	default:
		return nil, errors.BadRequest("Invalid listing status", nil)
	}

	listing, err := uc.ownedListing(ctx, sellerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status == entity.ListingStatusSold {
		return nil, errors.Conflict("Sold listings cannot change status")
	}

	listing.Status = status
	listing.UpdatedAt = time.Now()
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, errors.Internal("Failed to update listing", err)
	}
	return listing, nil
}

// MarkSold finalizes the sale: the listing goes terminal, a completed
// transaction is recorded for both participants, and the buyer is notified.
func (uc *ListingUseCase) MarkSold(ctx context.Context, sellerID, listingID, buyerID string) (*entity.Transaction, error) {
	if buyerID == "" {
		return nil, errors.BadRequest("Buyer is required", nil)
	}
	if buyerID == sellerID {
		return nil, errors.BadRequest("You cannot sell to yourself", nil)
	}

	listing, err := uc.ownedListing(ctx, sellerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.IsTerminal() {
		return nil, errors.Conflict("Listing is already closed")
	}

	now := time.Now()
	listing.Status = entity.ListingStatusSold
	listing.BuyerID = buyerID
	listing.SoldAt = &now
	listing.UpdatedAt = now
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, errors.Internal("Failed to update listing", err)
	}

	transaction := &entity.Transaction{
		ListingID:   listing.ID,
		ItemID:      listing.ItemID,
		SellerID:    sellerID,
		BuyerID:     buyerID,
		Price:       listing.Price,
		Status:      entity.TransactionStatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
		CompletedAt: &now,
	}
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, errors.Internal("Failed to record transaction", err)
	}

	uc.notificationUC.NotifyAsync(buyerID, entity.NotificationTypeListingSold,
		"Purchase confirmed",
		fmt.Sprintf("The seller marked \"%s\" as sold to you", listing.Title),
		func(n *entity.Notification) {
			n.ListingID = listing.ID
			n.ItemID = listing.ItemID
		})

	return transaction, nil
}

func (uc *ListingUseCase) ownedListing(ctx context.Context, sellerID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have access to this listing", nil)
	}
	return listing, nil
}
