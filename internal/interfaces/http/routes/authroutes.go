package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures the Telegram login handshake routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group(constants.APIVersionPrefix + "/auth")
	{
		auth.POST("/login/initiate", cfg.RateLimiter.Limit(), cfg.AuthHandler.InitiateLogin)
		auth.GET("/login/status/:token", cfg.AuthHandler.LoginStatus)
		auth.POST("/refresh", cfg.RateLimiter.Limit(), cfg.AuthHandler.Refresh)
		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
	}
}
