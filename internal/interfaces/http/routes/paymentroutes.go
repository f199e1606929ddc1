package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// PaymentRouteConfig holds dependencies for deposit and webhook routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	WebhookHandler *handlers.WebhookHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupPaymentRoutes configures the user-facing payment routes and the
// provider callback endpoints. Webhooks sit outside the API prefix; each
// provider authenticates with its own signature scheme.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	payments := engine.Group(constants.APIVersionPrefix + "/payments")
	payments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		payments.POST("/deposits", cfg.RateLimiter.Limit(), cfg.PaymentHandler.InitiateDeposit)
		payments.GET("/transactions", cfg.PaymentHandler.List)
		payments.GET("/transactions/:id", cfg.PaymentHandler.Get)
	}

	webhooks := engine.Group("/webhooks")
	{
		webhooks.POST("/payme", cfg.WebhookHandler.Payme)
		webhooks.POST("/click/prepare", cfg.WebhookHandler.ClickPrepare)
		webhooks.POST("/click/complete", cfg.WebhookHandler.ClickComplete)
		webhooks.POST("/cryptopay", cfg.WebhookHandler.Cryptopay)
	}
}
