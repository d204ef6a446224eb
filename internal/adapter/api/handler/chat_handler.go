package handler

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/usecase"
	"barangku/pkg/response"
	"barangku/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}

type sendMessageRequest struct {
	Content        string   `json:"content"`
	Type           string   `json:"type" validate:"omitempty,oneof=text image offer"`
	AttachmentURLs []string `json:"attachment_urls" validate:"omitempty,dive,url"`
}

func (h *ChatHandler) StartChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.StartChat(c.Request().Context(), uid, req.ListingID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), uid, pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, chats, total, pagination.Number, pagination.Size)
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChat(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chat)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPage(c, utils.ChatPageSize)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), uid, c.Param("id"), pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, messages, total, pagination.Number, pagination.Size)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, c.Param("id"), usecase.SendMessageInput{
		Content:        req.Content,
		Type:           req.Type,
		AttachmentURLs: req.AttachmentURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

// MarkChatAsRead is idempotent; repeated calls succeed without effect.
func (h *ChatHandler) MarkChatAsRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkChatAsRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Conversation marked as read"})
}

func (h *ChatHandler) UnreadCount(c echo.Context) error {
	uid := c.Get("uid").(string)

	total, err := h.chatUseCase.UnreadTotal(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"unread": total})
}
