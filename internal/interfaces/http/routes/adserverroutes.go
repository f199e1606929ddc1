package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AdServerRouteConfig holds dependencies for the delivery API.
type AdServerRouteConfig struct {
	AdServerHandler  *handlers.AdServerHandler
	BotKeyMiddleware *middleware.BotKeyMiddleware
	RateLimiter      *middleware.RateLimiter
}

// SetupAdServerRoutes configures the bot-facing serve endpoint and the public
// click redirect. The redirect carries no auth: the viewer's browser hits it.
func SetupAdServerRoutes(engine *gin.Engine, cfg *AdServerRouteConfig) {
	serve := engine.Group(constants.APIVersionPrefix + "/ad")
	serve.Use(cfg.BotKeyMiddleware.RequireBotKey())
	{
		serve.POST("/SendPost", cfg.AdServerHandler.SendPost)
	}

	engine.GET("/c/:ad/:bot/:idx", cfg.RateLimiter.Limit(), cfg.AdServerHandler.Click)
}
