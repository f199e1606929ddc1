package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers/admin"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AdminRouteConfig holds dependencies for staff-only routes.
type AdminRouteConfig struct {
	UserHandler           *adminHandlers.UserHandler
	ModerationHandler     *adminHandlers.ModerationHandler
	SettingHandler        *adminHandlers.SettingHandler
	TierHandler           *adminHandlers.TierHandler
	WithdrawalHandler     *adminHandlers.WithdrawalHandler
	ReconciliationHandler *adminHandlers.ReconciliationHandler
	WalletHandler         *adminHandlers.WalletHandler
	CatalogHandler        *adminHandlers.CatalogHandler
	AuthMiddleware        *middleware.AuthMiddleware
	Permission            *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures the staff surface. Every group authenticates
// and then runs a policy check on its resource, so moderators see only the
// review desk while admins get the rest.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group(constants.APIVersionPrefix + "/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	users := admin.Group("/users")
	{
		users.GET("", cfg.Permission.Require("user", "list"), cfg.UserHandler.List)
		users.GET("/:id", cfg.Permission.Require("user", "read"), cfg.UserHandler.Get)
		users.POST("/:id/ban", cfg.Permission.Require("user", "suspend"), cfg.UserHandler.Ban)
		users.POST("/:id/unban", cfg.Permission.Require("user", "suspend"), cfg.UserHandler.Unban)
		users.POST("/:id/roles", cfg.Permission.Require("user", "update"), cfg.UserHandler.GrantRole)
		users.DELETE("/:id/roles", cfg.Permission.Require("user", "update"), cfg.UserHandler.RevokeRole)
		users.POST("/:id/adjust-balance", cfg.Permission.Require("wallet", "list"), cfg.UserHandler.AdjustBalance)
		users.GET("/:id/verify-balance", cfg.Permission.Require("wallet", "list"), cfg.WalletHandler.VerifyBalance)
	}

	moderation := admin.Group("/moderation")
	{
		moderation.GET("/ads", cfg.Permission.Require("ad", "list"), cfg.ModerationHandler.PendingAds)
		moderation.POST("/ads/:id/approve", cfg.Permission.Require("ad", "approve"), cfg.ModerationHandler.ApproveAd)
		moderation.POST("/ads/:id/reject", cfg.Permission.Require("ad", "reject"), cfg.ModerationHandler.RejectAd)
		moderation.POST("/ads/:id/request-edit", cfg.Permission.Require("ad", "reject"), cfg.ModerationHandler.RequestAdEdit)
		moderation.GET("/bots", cfg.Permission.Require("bot", "list"), cfg.ModerationHandler.PendingBots)
		moderation.POST("/bots/:id/approve", cfg.Permission.Require("bot", "approve"), cfg.ModerationHandler.ApproveBot)
		moderation.POST("/bots/:id/reject", cfg.Permission.Require("bot", "reject"), cfg.ModerationHandler.RejectBot)
		moderation.POST("/bots/:id/suspend", cfg.Permission.Require("bot", "suspend"), cfg.ModerationHandler.SuspendBot)
		moderation.GET("/audit-trail", cfg.Permission.Require("audit_log", "list"), cfg.ModerationHandler.AuditTrail)
	}

	settings := admin.Group("/settings")
	settings.Use(cfg.Permission.Require("platform_setting", "update"))
	{
		settings.GET("", cfg.SettingHandler.List)
		settings.GET("/:key", cfg.SettingHandler.Get)
		settings.PUT("/:key", cfg.SettingHandler.Update)
	}

	tiers := admin.Group("/tiers")
	{
		tiers.GET("", cfg.Permission.Require("pricing_tier", "list"), cfg.TierHandler.List)
		tiers.POST("", cfg.Permission.Require("pricing_tier", "create"), cfg.TierHandler.Create)
		tiers.PUT("/:id", cfg.Permission.Require("pricing_tier", "update"), cfg.TierHandler.Update)
		tiers.PATCH("/:id/active", cfg.Permission.Require("pricing_tier", "update"), cfg.TierHandler.SetActive)
		tiers.DELETE("/:id", cfg.Permission.Require("pricing_tier", "delete"), cfg.TierHandler.Delete)
	}

	withdrawals := admin.Group("/withdrawals")
	{
		withdrawals.GET("", cfg.Permission.Require("withdrawal", "list"), cfg.WithdrawalHandler.List)
		withdrawals.POST("/:id/take-review", cfg.Permission.Require("withdrawal", "approve"), cfg.WithdrawalHandler.TakeForReview)
		withdrawals.POST("/:id/approve", cfg.Permission.Require("withdrawal", "approve"), cfg.WithdrawalHandler.Approve)
		withdrawals.POST("/:id/reject", cfg.Permission.Require("withdrawal", "reject"), cfg.WithdrawalHandler.Reject)
	}

	reconciliation := admin.Group("/reconciliation")
	reconciliation.Use(cfg.Permission.Require("transaction", "list"))
	{
		reconciliation.GET("", cfg.ReconciliationHandler.List)
		reconciliation.POST("/:id/resolve", cfg.ReconciliationHandler.Resolve)
	}

	catalog := admin.Group("")
	{
		catalog.GET("/ads", cfg.Permission.Require("ad", "list"), cfg.CatalogHandler.ListAds)
		catalog.GET("/bots", cfg.Permission.Require("bot", "list"), cfg.CatalogHandler.ListBots)
		catalog.GET("/transactions", cfg.Permission.Require("transaction", "list"), cfg.CatalogHandler.ListTransactions)
	}
}
