package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// UserRouteConfig holds dependencies for account self-service routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	WalletHandler  *handlers.WalletHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures profile, dashboard and wallet routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	users := engine.Group(constants.APIVersionPrefix + "/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", cfg.UserHandler.Me)
		users.PATCH("/me/locale", cfg.UserHandler.SetLocale)
		users.GET("/me/dashboard", cfg.UserHandler.Dashboard)
	}

	wallet := engine.Group(constants.APIVersionPrefix + "/wallet")
	wallet.Use(cfg.AuthMiddleware.RequireAuth())
	{
		wallet.GET("", cfg.WalletHandler.GetWallet)
		wallet.GET("/ledger", cfg.WalletHandler.ListLedger)
	}
}
