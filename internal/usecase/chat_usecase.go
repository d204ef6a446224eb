package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/internal/infrastructure/websocket"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

type ChatUseCase struct {
	chatRepo       repository.ChatRepository
	listingRepo    repository.ListingRepository
	userRepo       repository.UserRepository
	broadcaster    Broadcaster
	presence       PresenceStore
	notificationUC *NotificationUseCase
	rateLimiter    RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	broadcaster Broadcaster,
	presence PresenceStore,
	notificationUC *NotificationUseCase,
	rateLimiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:       chatRepo,
		listingRepo:    listingRepo,
		userRepo:       userRepo,
		broadcaster:    broadcaster,
		presence:       presence,
		notificationUC: notificationUC,
		rateLimiter:    rateLimiter,
	}
}

// MessageView is a message as one participant sees it.
type MessageView struct {
	*entity.Message
	IsMine bool `json:"is_mine"`
}

// StartChat opens (or reuses) the conversation between the buyer and the
// listing's seller. Repeated starts for the same listing and pair return the
// existing conversation.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID, listingID string) (*entity.Chat, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, errors.NotFound("Listing", err)
	}
	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	participants := []string{buyerID, listing.SellerID}
	existing, err := uc.chatRepo.GetByListingAndParticipants(ctx, listingID, participants)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, errors.Internal("Failed to check existing conversations", err)
	}
	if existing != nil {
		return existing, nil
	}

	if allowed, wait := uc.rateLimiter.Allow(buyerID, "create_chat"); !allowed {
		return nil, errors.TooManyRequests("Too many new conversations", wait)
	}

	now := time.Now()
	chat := &entity.Chat{
		ListingID:    listingID,
		Participants: participants,
		SellerID:     listing.SellerID,
		BuyerID:      buyerID,
		UnreadCount:  map[string]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, errors.Internal("Failed to create conversation", err)
	}
	return chat, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, errors.NotFound("Conversation", err)
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You don't have access to this conversation", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	chats, total, err := uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list conversations", err)
	}
	return chats, total, nil
}

// GetMessages returns the conversation's messages ordered ascending by
// creation time, with is_mine computed for the viewer.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string, limit, offset int) ([]*MessageView, int64, error) {
	if _, err := uc.GetChat(ctx, userID, chatID); err != nil {
		return nil, 0, err
	}

	messages, total, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to load messages", err)
	}

	views := make([]*MessageView, len(messages))
	for i, msg := range messages {
		views[i] = &MessageView{Message: msg, IsMine: msg.SenderID == userID}
	}
	return views, total, nil
}

type SendMessageInput struct {
	Content        string
	Type           string
	AttachmentURLs []string
}

// SendMessage persists the message, updates the conversation summary, fans the
// event out to sockets, and notifies the recipient unless they are actively
// viewing this conversation.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, chatID string, input SendMessageInput) (*entity.Message, error) {
	chat, err := uc.GetChat(ctx, senderID, chatID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" && len(input.AttachmentURLs) == 0 {
		return nil, errors.BadRequest("Message cannot be empty", nil)
	}
	msgType := input.Type
	if msgType == "" {
		msgType = entity.MessageTypeText
	}

	if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly", wait)
	}

	now := time.Now()
	message := &entity.Message{
		ChatID:         chatID,
		SenderID:       senderID,
		Content:        content,
		Type:           msgType,
		AttachmentURLs: input.AttachmentURLs,
		ReadBy:         []string{senderID},
		CreatedAt:      now,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, errors.Internal("Failed to send message", err)
	}

	recipientID := chat.OtherParticipant(senderID)

	chat.LastMessage = summarize(message)
	chat.LastMessageAt = now
	chat.UpdatedAt = now
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[recipientID]++
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.SideEffect("update_chat_summary", err)
	}

	uc.fanOut(chat, message, recipientID)

	return message, nil
}

// fanOut pushes the new message to the open conversation room, refreshes both
// participants' chat lists, and creates a push notification for the recipient
// unless presence says they are already looking at this conversation.
func (uc *ChatUseCase) fanOut(chat *entity.Chat, message *entity.Message, recipientID string) {
	if uc.broadcaster != nil {
		if payload, err := json.Marshal(websocket.WSMessage{
			Type:      websocket.MessageTypeNewMessage,
			ChatID:    chat.ID,
			Data:      message,
			Timestamp: time.Now().Format(time.RFC3339),
		}); err == nil {
			uc.broadcaster.SendToChatRoom(chat.ID, payload, message.SenderID)
		}

		if payload, err := json.Marshal(websocket.WSMessage{
			Type:      websocket.MessageTypeChatListUpdate,
			ChatID:    chat.ID,
			Data:      chat,
			Timestamp: time.Now().Format(time.RFC3339),
		}); err == nil {
			for _, participant := range chat.Participants {
				uc.broadcaster.SendToUser(participant, payload)
			}
		}
	}

	suppressCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if uc.presence != nil && uc.presence.IsViewing(suppressCtx, recipientID, chat.ID) {
		logger.Debug("suppressing notification: %s is viewing chat %s", recipientID, chat.ID)
		return
	}

	uc.notificationUC.NotifyAsync(recipientID, entity.NotificationTypeMessage,
		"New message",
		summarize(message),
		func(n *entity.Notification) {
			n.ChatID = chat.ID
			n.ListingID = chat.ListingID
		})
}

// MarkChatAsRead marks every message in the conversation as read by userID
// and zeroes their unread counter. Calling it again, or for a conversation
// with nothing unread, succeeds without effect.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.GetChat(ctx, userID, chatID)
	if err != nil {
		return err
	}

	messages, _, err := uc.chatRepo.GetMessagesByChat(ctx, chatID, 0, 0)
	if err != nil {
		return errors.Internal("Failed to load messages", err)
	}

	for _, msg := range messages {
		if msg.SenderID == userID || msg.ReadByUser(userID) {
			continue
		}
		if err := uc.chatRepo.UpdateMessageReadStatus(ctx, chatID, msg.ID, userID); err != nil {
			return errors.Internal("Failed to mark messages read", err)
		}
	}

	if chat.UnreadCount[userID] != 0 {
		chat.UnreadCount[userID] = 0
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			return errors.Internal("Failed to update conversation", err)
		}
	}
	return nil
}

// UnreadTotal is the badge count across all conversations.
func (uc *ChatUseCase) UnreadTotal(ctx context.Context, userID string) (int, error) {
	chats, _, err := uc.chatRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return 0, errors.Internal("Failed to list conversations", err)
	}

	total := 0
	for _, chat := range chats {
		total += chat.UnreadCount[userID]
	}
	return total, nil
}

func summarize(message *entity.Message) string {
	switch message.Type {
	case entity.MessageTypeImage:
		return "[photo]"
	case entity.MessageTypeOffer:
		return fmt.Sprintf("Offer: %s", message.Content)
	default:
		// Truncate on rune boundaries so the preview never splits a
		// multi-byte character.
		runes := []rune(message.Content)
		if len(runes) > 80 {
			return string(runes[:77]) + "..."
		}
		return message.Content
	}
}
