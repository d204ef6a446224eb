package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	// Browsing is public; a token, when present, identifies the viewer for
	// view counting.
	browseGroup := e.Group("/v1/listings")
	browseGroup.Use(OptionalAuth(authClient))
	browseGroup.GET("", listingHandler.Browse)
	browseGroup.GET("/:id", listingHandler.Get)

	sellGroup := e.Group("/v1/listings")
	sellGroup.Use(authMiddleware.Authenticate)
	sellGroup.POST("", listingHandler.Create)
	sellGroup.PATCH("/:id", listingHandler.Update)
	sellGroup.PUT("/:id/status", listingHandler.SetStatus)
	sellGroup.POST("/:id/sold", listingHandler.MarkSold)

	myGroup := e.Group("/v1/my-listings")
	myGroup.Use(authMiddleware.Authenticate)
	myGroup.GET("", listingHandler.MyListings)
}
