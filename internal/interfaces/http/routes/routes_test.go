package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
)

func registeredRoutes(engine *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, r := range engine.Routes() {
		set[r.Method+" "+r.Path] = true
	}
	return set
}

func TestAuthRoutePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupAuthRoutes(engine, &AuthRouteConfig{
		AuthHandler:    &handlers.AuthHandler{},
		AuthMiddleware: &middleware.AuthMiddleware{},
		RateLimiter:    &middleware.RateLimiter{},
	})

	got := registeredRoutes(engine)
	assert.Contains(t, got, "POST /api/v1/auth/login/initiate")
	assert.Contains(t, got, "GET /api/v1/auth/login/status/:token")
	assert.Contains(t, got, "POST /api/v1/auth/refresh")
	assert.Contains(t, got, "POST /api/v1/auth/logout")
}

func TestAdServerRoutePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupAdServerRoutes(engine, &AdServerRouteConfig{
		AdServerHandler:  &handlers.AdServerHandler{},
		BotKeyMiddleware: &middleware.BotKeyMiddleware{},
		RateLimiter:      &middleware.RateLimiter{},
	})

	got := registeredRoutes(engine)
	assert.Contains(t, got, "POST /api/v1/ad/SendPost")
	assert.Contains(t, got, "GET /c/:ad/:bot/:idx")
}
