package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Item         *handler.ItemHandler
	Taxonomy     *handler.TaxonomyHandler
	Listing      *handler.ListingHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Review       *handler.ReviewHandler
	Assistant    *handler.AssistantHandler
	File         *handler.FileHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupItemRouter(e, h.Item, authMiddleware)
	SetupTaxonomyRouter(e, h.Taxonomy, authMiddleware)
	SetupListingRouter(e, h.Listing, authMiddleware, authClient)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupNotificationRouter(e, h.Notification, authMiddleware)
	SetupReviewRouter(e, h.Review, authMiddleware)
	SetupAssistantRouter(e, h.Assistant, authMiddleware)
	SetupFileRouter(e, h.File, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authClient)
	SetupHealthRouter(e, h.Health)
}
