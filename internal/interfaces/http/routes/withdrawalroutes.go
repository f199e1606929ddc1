package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// WithdrawalRouteConfig holds dependencies for payout routes.
type WithdrawalRouteConfig struct {
	WithdrawalHandler *handlers.WithdrawalHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupWithdrawalRoutes configures the bot-owner payout routes.
func SetupWithdrawalRoutes(engine *gin.Engine, cfg *WithdrawalRouteConfig) {
	withdrawals := engine.Group(constants.APIVersionPrefix + "/withdrawals")
	withdrawals.Use(cfg.AuthMiddleware.RequireAuth())
	{
		withdrawals.POST("", cfg.WithdrawalHandler.Create)
		withdrawals.GET("", cfg.WithdrawalHandler.List)
		withdrawals.GET("/:id", cfg.WithdrawalHandler.Get)
		withdrawals.POST("/:id/cancel", cfg.WithdrawalHandler.Cancel)
	}
}
