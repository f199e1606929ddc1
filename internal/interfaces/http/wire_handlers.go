package http

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	adminHandlers "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers/admin"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
)

// initHandlers builds the middlewares and every HTTP handler.
func (c *Container) initHandlers() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.user, c.log)
	c.botKeyMiddleware = middleware.NewBotKeyMiddleware(c.botKeys, c.repos.bot, c.log)
	c.permMiddleware = middleware.NewPermissionMiddleware(c.permissionSvc, c.log)
	c.rateLimiter = middleware.NewRateLimiter(c.redis, 60, time.Minute)

	c.authHandler = handlers.NewAuthHandler(c.authSvc, c.log)
	c.userHandler = handlers.NewUserHandler(c.userSvc, c.log)
	c.walletHandler = handlers.NewWalletHandler(c.walletSvc, c.log)
	c.adHandler = handlers.NewAdHandler(
		c.adUCs.create, c.adUCs.get, c.adUCs.list, c.adUCs.update,
		c.adUCs.submit, c.adUCs.pause, c.adUCs.resume, c.adUCs.cancel,
		c.adUCs.archive, c.repos.click, c.log,
	)
	c.botHandler = handlers.NewBotHandler(c.botSvc, c.log)
	c.adServerHandler = handlers.NewAdServerHandler(c.adServerSvc, c.clickTracker, c.log)
	c.paymentHandler = handlers.NewPaymentHandler(c.paymentSvc, c.log)
	c.webhookHandler = handlers.NewWebhookHandler(c.paymeAdapter, c.clickAdapter, c.cryptopayAdapter, c.log)
	c.withdrawalHandler = handlers.NewWithdrawalHandler(c.withdrawalSvc, c.log)
	c.pricingHandler = handlers.NewPricingHandler(c.pricingSvc, c.log)
	c.healthHandler = handlers.NewHealthHandler(c.db, c.redis)

	c.adminUserHandler = adminHandlers.NewUserHandler(c.userSvc, c.log)
	c.adminModerationHandler = adminHandlers.NewModerationHandler(c.moderationSvc, c.log)
	c.adminSettingHandler = adminHandlers.NewSettingHandler(c.settingSvc, c.log)
	c.adminTierHandler = adminHandlers.NewTierHandler(c.pricingSvc, c.log)
	c.adminWithdrawalHandler = adminHandlers.NewWithdrawalHandler(c.withdrawalSvc, c.log)
	c.adminReconciliationHandler = adminHandlers.NewReconciliationHandler(c.paymentSvc, c.log)
	c.adminWalletHandler = adminHandlers.NewWalletHandler(c.walletSvc, c.userSvc, c.log)
	c.adminCatalogHandler = adminHandlers.NewCatalogHandler(c.adUCs.list, c.botSvc, c.paymentSvc, c.log)
}
