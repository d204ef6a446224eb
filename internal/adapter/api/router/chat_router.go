package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartChat)
	chatGroup.GET("", chatHandler.ListChats)
	chatGroup.GET("/unread-count", chatHandler.UnreadCount)
	chatGroup.GET("/:id", chatHandler.GetChat)
	chatGroup.PUT("/:id/read", chatHandler.MarkChatAsRead)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.GetMessages)
}
