package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// PricingRouteConfig holds dependencies for the public pricing routes.
type PricingRouteConfig struct {
	PricingHandler *handlers.PricingHandler
}

// SetupPricingRoutes configures the tier catalog and quote calculator. Both
// are public so the storefront can price orders before login.
func SetupPricingRoutes(engine *gin.Engine, cfg *PricingRouteConfig) {
	pricing := engine.Group(constants.APIVersionPrefix + "/pricing")
	{
		pricing.GET("/tiers", cfg.PricingHandler.ListTiers)
		pricing.POST("/quote", cfg.PricingHandler.Quote)
	}
}
