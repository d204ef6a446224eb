package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"barangku/internal/usecase"
	"barangku/pkg/response"
	"barangku/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// List returns one tab's notifications pre-bucketed by calendar day. The
// client sends its IANA time zone in ?tz= so bucket boundaries follow the
// viewer's local midnight.
func (h *NotificationHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	loc := time.UTC
	if tz := c.QueryParam("tz"); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		}
	}

	page, err := h.notificationUseCase.List(c.Request().Context(), uid, c.QueryParam("tab"), pagination.Size, pagination.Offset, loc)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, page)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Dismiss(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.notificationUseCase.Dismiss(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Notification dismissed"})
}
