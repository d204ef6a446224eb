package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, itemHandler *handler.ItemHandler, authMiddleware *middleware.AuthMiddleware) {
	itemGroup := e.Group("/v1/items")
	itemGroup.Use(authMiddleware.Authenticate)

	itemGroup.POST("", itemHandler.Create)
	itemGroup.GET("", itemHandler.List)
	itemGroup.GET("/:id", itemHandler.Get)
	itemGroup.PATCH("/:id", itemHandler.Update)
	itemGroup.DELETE("/:id", itemHandler.Delete)
	itemGroup.POST("/:id/undo", itemHandler.Undo)
	itemGroup.POST("/:id/photo", itemHandler.UploadPhoto)
}
