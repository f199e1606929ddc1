package http

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/routes"
)

// setupRoutes installs the global middleware chain and mounts every route
// group on the engine.
func (c *Container) setupRoutes() {
	c.engine.Use(middleware.Recovery())
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/healthz", c.healthHandler.Live)
	c.engine.GET("/readyz", c.healthHandler.Ready)

	routes.SetupAuthRoutes(c.engine, &routes.AuthRouteConfig{
		AuthHandler:    c.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupUserRoutes(c.engine, &routes.UserRouteConfig{
		UserHandler:    c.userHandler,
		WalletHandler:  c.walletHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupAdRoutes(c.engine, &routes.AdRouteConfig{
		AdHandler:      c.adHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupBotRoutes(c.engine, &routes.BotRouteConfig{
		BotHandler:     c.botHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupAdServerRoutes(c.engine, &routes.AdServerRouteConfig{
		AdServerHandler:  c.adServerHandler,
		BotKeyMiddleware: c.botKeyMiddleware,
		RateLimiter:      c.rateLimiter,
	})

	routes.SetupPaymentRoutes(c.engine, &routes.PaymentRouteConfig{
		PaymentHandler: c.paymentHandler,
		WebhookHandler: c.webhookHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupWithdrawalRoutes(c.engine, &routes.WithdrawalRouteConfig{
		WithdrawalHandler: c.withdrawalHandler,
		AuthMiddleware:    c.authMiddleware,
	})

	routes.SetupPricingRoutes(c.engine, &routes.PricingRouteConfig{
		PricingHandler: c.pricingHandler,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		UserHandler:           c.adminUserHandler,
		ModerationHandler:     c.adminModerationHandler,
		SettingHandler:        c.adminSettingHandler,
		TierHandler:           c.adminTierHandler,
		WithdrawalHandler:     c.adminWithdrawalHandler,
		ReconciliationHandler: c.adminReconciliationHandler,
		WalletHandler:         c.adminWalletHandler,
		CatalogHandler:        c.adminCatalogHandler,
		AuthMiddleware:        c.authMiddleware,
		Permission:            c.permMiddleware,
	})
}
