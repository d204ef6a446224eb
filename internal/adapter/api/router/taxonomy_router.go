package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupTaxonomyRouter(e *echo.Echo, taxonomyHandler *handler.TaxonomyHandler, authMiddleware *middleware.AuthMiddleware) {
	categoryGroup := e.Group("/v1/categories")
	categoryGroup.Use(authMiddleware.Authenticate)
	categoryGroup.GET("", taxonomyHandler.ListCategories)
	categoryGroup.POST("", taxonomyHandler.CreateCategory)
	categoryGroup.PATCH("/:id", taxonomyHandler.UpdateCategory)
	categoryGroup.DELETE("/:id", taxonomyHandler.DeleteCategory)

	locationGroup := e.Group("/v1/locations")
	locationGroup.Use(authMiddleware.Authenticate)
	locationGroup.GET("", taxonomyHandler.ListLocations)
	locationGroup.POST("", taxonomyHandler.CreateLocation)
	locationGroup.PATCH("/:id", taxonomyHandler.UpdateLocation)
	locationGroup.DELETE("/:id", taxonomyHandler.DeleteLocation)
}
