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

type fakeReviewRepo struct {
	mu        sync.Mutex
	reviews   map[string]*entity.Review
	lookupErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*entity.Review{}}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, review := range r.reviews {
		if review.TransactionID == transactionID && review.ReviewerID == reviewerID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *fakeReviewRepo) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.TargetID == targetID {
			copied := *review
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

type reviewFixture struct {
	uc         *ReviewUseCase
	reviewRepo *fakeReviewRepo
	userRepo   *fakeUserRepo
	notifRepo  *fakeNotificationRepo
	tx         *entity.Transaction
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	reviewRepo := newFakeReviewRepo()
	txRepo := newFakeTransactionRepo()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"seller": {ID: "seller", Username: "seller"},
		"buyer":  {ID: "buyer", Username: "buyer"},
	}}
	notifRepo := &fakeNotificationRepo{}

	completedAt := time.Now().Add(-time.Hour)
	tx := &entity.Transaction{
		ListingID:   "listing-1",
		ItemID:      "item-1",
		SellerID:    "seller",
		BuyerID:     "buyer",
		Price:       150,
		Status:      entity.TransactionStatusCompleted,
		CompletedAt: &completedAt,
	}
	require.NoError(t, txRepo.Create(context.Background(), tx))

	uc := NewReviewUseCase(reviewRepo, txRepo, userRepo, newFakeChatRepo(), NewNotificationUseCase(notifRepo, nil))
	return &reviewFixture{uc: uc, reviewRepo: reviewRepo, userRepo: userRepo, notifRepo: notifRepo, tx: tx}
}

func TestSubmitAllowsOneReviewPerParticipant(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	review, err := f.uc.Submit(ctx, "buyer", f.tx.ID, 5, "great seller")
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewTypeSeller, review.Type)
	assert.Equal(t, "seller", review.TargetID)

	_, err = f.uc.Submit(ctx, "buyer", f.tx.ID, 4, "second thoughts")
	assert.True(t, errors.Is(err, "CONFLICT"))

	// The seller's side of the same transaction is still open.
	_, err = f.uc.Submit(ctx, "seller", f.tx.ID, 4, "smooth pickup")
	assert.NoError(t, err)
}

func TestSubmitFailsClosedWhenLookupErrors(t *testing.T) {
	f := newReviewFixture(t)
	f.reviewRepo.lookupErr = errors.Internal("store unavailable", nil)

	_, err := f.uc.Submit(context.Background(), "buyer", f.tx.ID, 5, "")
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
}

func TestSubmitRejectsOutsiders(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.uc.Submit(context.Background(), "intruder", f.tx.ID, 5, "")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	_, err := f.uc.Submit(ctx, "buyer", f.tx.ID, 0, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.Submit(ctx, "buyer", f.tx.ID, 6, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSubmitUpdatesRollingAverage(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	f.userRepo.users["seller"].SellerRating = 3
	f.userRepo.users["seller"].SellerReviewCount = 1

	_, err := f.uc.Submit(ctx, "buyer", f.tx.ID, 5, "")
	require.NoError(t, err)

	seller := f.userRepo.users["seller"]
	assert.Equal(t, 2, seller.SellerReviewCount)
	assert.InDelta(t, 4.0, seller.SellerRating, 0.001)
}

func TestSubmitNotifiesTarget(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.uc.Submit(context.Background(), "buyer", f.tx.ID, 5, "")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return f.notifRepo.count("seller") == 1 }, time.Second, 10*time.Millisecond)
}

func TestPendingListsOnlyUnreviewedTransactions(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	pending, err := f.uc.Pending(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.tx.ID, pending[0].TransactionID)
	assert.Equal(t, "seller", pending[0].TargetID)
	assert.Equal(t, *f.tx.CompletedAt, pending[0].CompletedAt)

	_, err = f.uc.Submit(ctx, "buyer", f.tx.ID, 5, "")
	require.NoError(t, err)

	pending, err = f.uc.Pending(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The seller has not reviewed yet, so their side still shows up.
	pending, err = f.uc.Pending(ctx, "seller")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
