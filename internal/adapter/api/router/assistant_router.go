package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupAssistantRouter(e *echo.Echo, assistantHandler *handler.AssistantHandler, authMiddleware *middleware.AuthMiddleware) {
	assistantGroup := e.Group("/v1/assistant")
	assistantGroup.Use(authMiddleware.Authenticate)

	assistantGroup.POST("/analyze", assistantHandler.Analyze)
	assistantGroup.POST("/followup", assistantHandler.Followup)
	assistantGroup.GET("/recent", assistantHandler.RecentQueries)
}
