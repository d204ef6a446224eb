package usecase

import (
	"context"
	"fmt"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo      repository.ReviewRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	chatRepo        repository.ChatRepository
	notificationUC  *NotificationUseCase
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	chatRepo repository.ChatRepository,
	notificationUC *NotificationUseCase,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:      reviewRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		chatRepo:        chatRepo,
		notificationUC:  notificationUC,
	}
}

// Submit records the reviewer's side of a completed transaction. Each
// participant gets exactly one review per transaction: the buyer reviews the
// seller and the seller reviews the buyer.
func (uc *ReviewUseCase) Submit(ctx context.Context, reviewerID, transactionID string, rating int, content string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, errors.NotFound("Transaction", err)
	}
	if transaction.Status != entity.TransactionStatusCompleted {
		return nil, errors.BadRequest("Only completed transactions can be reviewed", nil)
	}

	var targetID, reviewType string
	switch reviewerID {
	case transaction.BuyerID:
		targetID, reviewType = transaction.SellerID, entity.ReviewTypeSeller
	case transaction.SellerID:
		targetID, reviewType = transaction.BuyerID, entity.ReviewTypeBuyer
	default:
		return nil, errors.Forbidden("You did not take part in this transaction", nil)
	}

	if _, err := uc.reviewRepo.GetByTransactionAndReviewer(ctx, transactionID, reviewerID); err == nil {
		return nil, errors.Conflict("You already reviewed this transaction")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, errors.Internal("Failed to check review", err)
	}

	now := time.Now()
	review := &entity.Review{
		TransactionID: transactionID,
		ListingID:     transaction.ListingID,
		ReviewerID:    reviewerID,
		TargetID:      targetID,
		Type:          reviewType,
		Rating:        rating,
		Content:       content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Internal("Failed to save review", err)
	}

	if err := uc.applyRating(ctx, targetID, reviewType, rating); err != nil {
		return nil, err
	}

	uc.notificationUC.NotifyAsync(targetID, entity.NotificationTypeReviewReceived,
		"New review",
		fmt.Sprintf("You received a %d-star review", rating),
		func(n *entity.Notification) {
			n.ListingID = transaction.ListingID
		})

	return review, nil
}

// applyRating folds the new rating into the target's rolling average.
func (uc *ReviewUseCase) applyRating(ctx context.Context, targetID, reviewType string, rating int) error {
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if reviewType == entity.ReviewTypeSeller {
		total := user.SellerRating*float64(user.SellerReviewCount) + float64(rating)
		user.SellerReviewCount++
		user.SellerRating = total / float64(user.SellerReviewCount)
	} else {
		total := user.BuyerRating*float64(user.BuyerReviewCount) + float64(rating)
		user.BuyerReviewCount++
		user.BuyerRating = total / float64(user.BuyerReviewCount)
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return errors.Internal("Failed to update rating", err)
	}
	return nil
}

// Pending derives the reviews the user still owes: one per completed
// transaction they took part in and have not reviewed yet.
func (uc *ReviewUseCase) Pending(ctx context.Context, userID string) ([]*entity.PendingReview, error) {
	transactions, _, err := uc.transactionRepo.ListByParticipant(ctx, userID, entity.TransactionStatusCompleted, 0, 0)
	if err != nil {
		return nil, errors.Internal("Failed to list transactions", err)
	}

	var pending []*entity.PendingReview
	for _, tx := range transactions {
		if _, err := uc.reviewRepo.GetByTransactionAndReviewer(ctx, tx.ID, userID); err == nil {
			continue
		} else if !errors.Is(err, "NOT_FOUND") {
			return nil, errors.Internal("Failed to check review", err)
		}

		targetID, reviewType := tx.SellerID, entity.ReviewTypeSeller
		if userID == tx.SellerID {
			targetID, reviewType = tx.BuyerID, entity.ReviewTypeBuyer
		}
		completedAt := tx.UpdatedAt
		if tx.CompletedAt != nil {
			completedAt = *tx.CompletedAt
		}
		pending = append(pending, &entity.PendingReview{
			TransactionID: tx.ID,
			ListingID:     tx.ListingID,
			TargetID:      targetID,
			Type:          reviewType,
			CompletedAt:   completedAt,
		})
	}
	return pending, nil
}

func (uc *ReviewUseCase) ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	reviews, total, err := uc.reviewRepo.ListByTarget(ctx, targetID, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list reviews", err)
	}
	return reviews, total, nil
}

// Profile builds the seller aggregate shown on listing pages. Response rate
// is the fraction of the seller's conversations with nothing left unread.
func (uc *ReviewUseCase) Profile(ctx context.Context, userID string) (*entity.Profile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	profile := &entity.Profile{
		UserID:      user.ID,
		Username:    user.Username,
		AvatarURL:   user.AvatarURL,
		Rating:      user.SellerRating,
		ReviewCount: user.SellerReviewCount,
	}

	chats, _, err := uc.chatRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return nil, errors.Internal("Failed to list conversations", err)
	}
	if len(chats) > 0 {
		answered := 0
		for _, chat := range chats {
			if chat.UnreadCount[userID] == 0 {
				answered++
			}
		}
		profile.ResponseRate = float64(answered) / float64(len(chats))
	}
	return profile, nil
}
