package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AdRouteConfig holds dependencies for advertiser campaign routes.
type AdRouteConfig struct {
	AdHandler      *handlers.AdHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdRoutes configures the campaign lifecycle routes.
func SetupAdRoutes(engine *gin.Engine, cfg *AdRouteConfig) {
	ads := engine.Group(constants.APIVersionPrefix + "/ads")
	ads.Use(cfg.AuthMiddleware.RequireAuth())
	{
		ads.POST("", cfg.AdHandler.Create)
		ads.GET("", cfg.AdHandler.List)
		ads.GET("/:id", cfg.AdHandler.Get)
		ads.PUT("/:id", cfg.AdHandler.Update)
		ads.POST("/:id/submit", cfg.AdHandler.Submit)
		ads.POST("/:id/pause", cfg.AdHandler.Pause)
		ads.POST("/:id/resume", cfg.AdHandler.Resume)
		ads.POST("/:id/cancel", cfg.AdHandler.Cancel)
		ads.PATCH("/:id/archive", cfg.AdHandler.Archive)
		ads.GET("/:id/stats", cfg.AdHandler.Stats)
	}
}
