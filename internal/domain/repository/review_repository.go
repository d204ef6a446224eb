package repository

import (
	"context"

	"barangku/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// GetByTransactionAndReviewer enforces the one-review-per-participant
	// rule: a NOT_FOUND error means the reviewer's side is still pending.
	GetByTransactionAndReviewer(ctx context.Context, transactionID, reviewerID string) (*entity.Review, error)
	ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListByParticipant(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Transaction, int64, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
}
