package repository

import (
	"context"

	"barangku/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// GetByListingAndParticipants finds the existing conversation for a
	// listing between the same two users, if any.
	GetByListingAndParticipants(ctx context.Context, listingID string, participants []string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	// GetMessagesByChat returns messages ordered ascending by creation time.
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)
	UpdateMessageReadStatus(ctx context.Context, chatID, messageID, userID string) error
}
