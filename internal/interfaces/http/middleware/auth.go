package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// AuthMiddleware verifies access tokens and resolves the account behind them.
// The account lookup runs on every request so bans and deactivations take
// effect immediately, not at the next token refresh.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.VerifyAccess(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		u, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account not found")
			c.Abort()
			return
		}
		if !u.CanAuthenticate() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is suspended")
			c.Abort()
			return
		}

		setIdentity(c, u)
		c.Next()
	}
}

// OptionalAuth resolves the account when a valid token is present and stays
// silent otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.VerifyAccess(token)
		if err != nil {
			c.Next()
			return
		}
		if u, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID); err == nil && u.CanAuthenticate() {
			setIdentity(c, u)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func setIdentity(c *gin.Context, u *user.User) {
	c.Set(constants.ContextKeyUserID, u.ID())
	c.Set(constants.ContextKeyUserSID, u.SID())
	c.Set(constants.ContextKeyUserRole, effectiveRole(u).String())
	c.Set("user_roles", u.RoleStrings())
}

// effectiveRole picks the most privileged role the account holds, so staff
// gates keyed on a single role value see the right one.
func effectiveRole(u *user.User) authorization.UserRole {
	best := u.Role()
	for _, r := range u.Roles() {
		if rank(r) > rank(best) {
			best = r
		}
	}
	return best
}

func rank(r authorization.UserRole) int {
	switch r {
	case authorization.RoleSuperAdmin:
		return 4
	case authorization.RoleAdmin:
		return 3
	case authorization.RoleModerator:
		return 2
	case authorization.RoleBotOwner:
		return 1
	default:
		return 0
	}
}
