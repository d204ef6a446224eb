package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, reviewHandler *handler.ReviewHandler, authMiddleware *middleware.AuthMiddleware) {
	reviewGroup := e.Group("/v1/reviews")
	reviewGroup.Use(authMiddleware.Authenticate)
	reviewGroup.POST("", reviewHandler.Submit)
	reviewGroup.GET("/pending", reviewHandler.Pending)

	userGroup := e.Group("/v1/users")
	userGroup.GET("/:id/reviews", reviewHandler.ListByUser)
	userGroup.GET("/:id/profile", reviewHandler.Profile)
}
