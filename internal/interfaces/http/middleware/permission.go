package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appPermission "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/permission"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// PermissionMiddleware gates endpoints on the policy store instead of
// hard-coded role names. Runs after RequireAuth.
type PermissionMiddleware struct {
	permSvc *appPermission.Service
	logger  logger.Interface
}

func NewPermissionMiddleware(permSvc *appPermission.Service, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		permSvc: permSvc,
		logger:  logger,
	}
}

// Require allows the request through when any of the caller's roles holds the
// resource/action permission.
func (m *PermissionMiddleware) Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := contextRoles(c)
		if len(roles) == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		allowed, err := m.permSvc.Check(c.Request.Context(), roles, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "Access forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}

func contextRoles(c *gin.Context) []authorization.UserRole {
	var roles []authorization.UserRole
	if v, ok := c.Get("user_roles"); ok {
		if names, ok := v.([]string); ok {
			for _, name := range names {
				roles = append(roles, authorization.ParseUserRole(name))
			}
		}
	}
	if len(roles) == 0 {
		if role := c.GetString(constants.ContextKeyUserRole); role != "" {
			roles = append(roles, authorization.ParseUserRole(role))
		}
	}
	return roles
}
