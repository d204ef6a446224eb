package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	fileGroup := e.Group("/v1/files")
	fileGroup.Use(authMiddleware.Authenticate)

	fileGroup.POST("/chat-attachment", fileHandler.UploadChatAttachment)
}
