package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
)

// SetupWebSocketRouter exposes the realtime socket. Browsers cannot set an
// Authorization header on a WebSocket upgrade, so the token also travels in
// the ?token= query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authClient *auth.Client) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.QueryParam("token")
			if token == "" {
				return next(c)
			}
			if verified, err := authClient.VerifyIDToken(c.Request().Context(), token); err == nil {
				c.Set("uid", verified.UID)
			}
			return next(c)
		}
	}, OptionalAuth(authClient))
}
