package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangku/internal/domain/entity"
	"barangku/pkg/errors"
)

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: map[string]*entity.Transaction{}}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	copied := *tx
	r.transactions[tx.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTransactionRepo) ListByParticipant(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.SellerID != userID && tx.BuyerID != userID {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		copied := *tx
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *tx
	r.transactions[tx.ID] = &copied
	return nil
}

type listingFixture struct {
	uc          *ListingUseCase
	itemRepo    *fakeItemRepo
	listingRepo *fakeListingRepo
	txRepo      *fakeTransactionRepo
	notifRepo   *fakeNotificationRepo
	item        *entity.Item
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	itemRepo := newFakeItemRepo()
	listingRepo := &fakeListingRepo{listings: map[string]*entity.Listing{}}
	txRepo := newFakeTransactionRepo()
	notifRepo := &fakeNotificationRepo{}
	notificationUC := NewNotificationUseCase(notifRepo, nil)

	item := &entity.Item{OwnerID: "seller", Name: "Road bike", Quantity: 1}
	require.NoError(t, itemRepo.Create(context.Background(), item))

	return &listingFixture{
		uc:          NewListingUseCase(listingRepo, itemRepo, txRepo, notificationUC),
		itemRepo:    itemRepo,
		listingRepo: listingRepo,
		txRepo:      txRepo,
		notifRepo:   notifRepo,
		item:        item,
	}
}

func validListingInput(itemID string) CreateListingInput {
	return CreateListingInput{
		ItemID:    itemID,
		Title:     "Road bike, barely used",
		Price:     150,
		PriceType: entity.PriceTypeFixed,
	}
}

func TestCreateListingBlocksDoubleListing(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateListingFailsClosedWhenLookupErrors(t *testing.T) {
	f := newListingFixture(t)
	f.listingRepo.nonTerminalErr = errors.Internal("store unavailable", nil)

	_, err := f.uc.Create(context.Background(), "seller", validListingInput(f.item.ID))
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
}

func TestSoldItemIsRelistable(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	require.NoError(t, err)

	_, err = f.uc.MarkSold(ctx, "seller", listing.ID, "buyer")
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	assert.NoError(t, err)
}

func TestCreateListingRequiresOwnership(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.uc.Create(context.Background(), "intruder", validListingInput(f.item.ID))
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestFreeListingForcesZeroPrice(t *testing.T) {
	f := newListingFixture(t)

	input := validListingInput(f.item.ID)
	input.PriceType = entity.PriceTypeFree
	input.Price = 99

	listing, err := f.uc.Create(context.Background(), "seller", input)
	require.NoError(t, err)
	assert.Zero(t, listing.Price)
}

func TestMarkSoldRecordsCompletedTransactionAndNotifiesBuyer(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	require.NoError(t, err)

	tx, err := f.uc.MarkSold(ctx, "seller", listing.ID, "buyer")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, listing.Price, tx.Price)
	require.NotNil(t, tx.CompletedAt)

	assert.Eventually(t, func() bool { return f.notifRepo.count("buyer") == 1 }, time.Second, 10*time.Millisecond)
}

func TestMarkSoldRejectsSelfSale(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	require.NoError(t, err)

	_, err = f.uc.MarkSold(ctx, "seller", listing.ID, "seller")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSoldListingStatusIsFrozen(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.uc.Create(ctx, "seller", validListingInput(f.item.ID))
	require.NoError(t, err)
	_, err = f.uc.MarkSold(ctx, "seller", listing.ID, "buyer")
	require.NoError(t, err)

	_, err = f.uc.SetStatus(ctx, "seller", listing.ID, entity.ListingStatusActive)
	assert.True(t, errors.Is(err, "CONFLICT"))
}
