package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/pkg/errors"
)

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	if transaction.Status == "" {
		transaction.Status = entity.TransactionStatusPending
	}

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) ListByParticipant(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	// A user can sit on either side of a transaction; union both queries.
	var transactions []*entity.Transaction
	seen := make(map[string]bool)

	for _, field := range []string{"sellerId", "buyerId"} {
		query := r.client.Collection("transactions").Query.Where(field, "==", userID)
		if status != "" {
			query = query.Where("status", "==", status)
		}

		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			return nil, 0, errors.Internal("Failed to list transactions", err)
		}

		for _, doc := range docs {
			var transaction entity.Transaction
			if err := doc.DataTo(&transaction); err != nil {
				return nil, 0, errors.Internal("Failed to parse transaction data", err)
			}
			if seen[transaction.ID] {
				continue
			}
			seen[transaction.ID] = true
			transactions = append(transactions, &transaction)
		}
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})

	total := int64(len(transactions))
	transactions = paginate(transactions, limit, offset)

	return transactions, total, nil
}

func (r *firestoreTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to update transaction", err)
	}

	return nil
}
