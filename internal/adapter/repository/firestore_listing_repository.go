package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.Status == "" {
		listing.Status = entity.ListingStatusActive
	}

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) GetNonTerminalByItemID(ctx context.Context, itemID string) (*entity.Listing, error) {
	docs, err := r.client.Collection("listings").Query.
		Where("itemId", "==", itemID).
		Where("status", "in", []string{entity.ListingStatusActive, entity.ListingStatusReserved}).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query listings by item", err)
	}

	if len(docs) == 0 {
		return nil, errors.NotFound("Listing", nil)
	}

	var listing entity.Listing
	if err := docs[0].DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Query

	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	} else {
		query = query.Where("status", "==", entity.ListingStatusActive)
	}
	if filter.PriceType != "" {
		query = query.Where("priceType", "==", filter.PriceType)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list listings", err)
	}

	var listings []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}

		if filter.MinPrice > 0 && listing.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && listing.Price > filter.MaxPrice {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(listing.Title), needle) &&
				!strings.Contains(strings.ToLower(listing.Description), needle) {
				continue
			}
		}

		listings = append(listings, &listing)
	}

	switch filter.Sort {
	case "price_asc":
		sort.Slice(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })
	case "price_desc":
		sort.Slice(listings, func(i, j int) bool { return listings[i].Price > listings[j].Price })
	default:
		sort.Slice(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	}

	total := int64(len(listings))
	listings = paginate(listings, limit, offset)

	return listings, total, nil
}

func (r *firestoreListingRepository) ListBySeller(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Query.Where("sellerId", "==", sellerID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list seller listings", err)
	}

	var listings []*entity.Listing
	for _, doc := range docs {
		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		listings = append(listings, &listing)
	}

	total := int64(len(listings))
	listings = paginate(listings, limit, offset)

	return listings, total, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment listing views", err)
	}
	return nil
}
