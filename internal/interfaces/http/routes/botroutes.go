package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// BotRouteConfig holds dependencies for bot-owner routes.
type BotRouteConfig struct {
	BotHandler     *handlers.BotHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupBotRoutes configures bot registry and earnings routes.
func SetupBotRoutes(engine *gin.Engine, cfg *BotRouteConfig) {
	bots := engine.Group(constants.APIVersionPrefix + "/bots")
	bots.Use(cfg.AuthMiddleware.RequireAuth())
	{
		bots.POST("", cfg.BotHandler.Register)
		bots.GET("", cfg.BotHandler.List)
		bots.GET("/:id", cfg.BotHandler.Get)
		bots.POST("/:id/rotate-key", cfg.BotHandler.RotateKey)
		bots.POST("/:id/revoke-key", cfg.BotHandler.RevokeKey)
		bots.POST("/:id/pause", cfg.BotHandler.Pause)
		bots.POST("/:id/resume", cfg.BotHandler.Resume)
		bots.PATCH("/:id/profile", cfg.BotHandler.UpdateProfile)
		bots.PUT("/:id/blocked-categories", cfg.BotHandler.SetBlockedCategories)
		bots.PATCH("/:id/frequency", cfg.BotHandler.SetFrequency)
		bots.GET("/:id/stats", cfg.BotHandler.Stats)
	}
}
