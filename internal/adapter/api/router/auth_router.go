package router

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/adapter/api/handler"
	"barangku/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/reset-password", authHandler.ResetPassword)

	meGroup := e.Group("/v1/me")
	meGroup.Use(authMiddleware.Authenticate)
	meGroup.GET("", authHandler.Me)
	meGroup.PATCH("", authHandler.UpdateProfile)
	meGroup.PUT("/password", authHandler.UpdatePassword)
}
