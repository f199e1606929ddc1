package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// AuthHandler drives the Telegram login handshake from the website side:
// initiate, poll, token refresh and logout.
type AuthHandler struct {
	authSvc *appAuth.Service
	logger  logger.Interface
}

func NewAuthHandler(authSvc *appAuth.Service, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		logger:  logger,
	}
}

type loginInitiationResponse struct {
	Token    string `json:"token"`
	DeepLink string `json:"deep_link"`
	Code     string `json:"code"`
}

// InitiateLogin opens a login session. The website shows the returned code;
// the user proves presence by picking the same code in the bot chat.
func (h *AuthHandler) InitiateLogin(c *gin.Context) {
	init, err := h.authSvc.InitiateLogin(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.logger.Errorw("failed to initiate login", "error", err)
		RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login session created", loginInitiationResponse{
		Token:    init.Token,
		DeepLink: init.DeepLink,
		Code:     init.Code,
	})
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type loginStatusResponse struct {
	Authorized bool               `json:"authorized"`
	Tokens     *tokenPairResponse `json:"tokens,omitempty"`
	User       *UserResponse      `json:"user,omitempty"`
}

// LoginStatus is the website's polling endpoint. Once it reports authorized
// the session is consumed; the tokens travel exactly once.
func (h *AuthHandler) LoginStatus(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		BadRequest(c, "login token is required")
		return
	}

	status, err := h.authSvc.Status(c.Request.Context(), token)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "login session not found or expired")
		return
	}

	resp := loginStatusResponse{Authorized: status.Authorized}
	if status.Authorized && status.Tokens != nil {
		resp.Tokens = &tokenPairResponse{
			AccessToken:  status.Tokens.AccessToken,
			RefreshToken: status.Tokens.RefreshToken,
			ExpiresIn:    status.Tokens.ExpiresIn,
		}
		resp.User = ToUserResponse(status.User)
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token. A replayed token ends the whole chain, so
// the caller must always store the new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "refresh_token is required")
		return
	}

	pair, u, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "tokens refreshed", gin.H{
		"tokens": tokenPairResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		},
		"user": ToUserResponse(u),
	})
}

// Logout revokes the caller's refresh chain. Outstanding access tokens expire
// on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), CurrentUserID(c)); err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

type UserResponse struct {
	ID          string     `json:"id"`
	TelegramID  int64      `json:"telegram_id"`
	Username    string     `json:"username,omitempty"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name,omitempty"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	Roles       []string   `json:"roles"`
	Locale      string     `json:"locale"`
	IsBanned    bool       `json:"is_banned"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.SID(),
		TelegramID:  u.TelegramID(),
		Username:    u.Username(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
		Roles:       u.RoleStrings(),
		Locale:      u.Locale(),
		IsBanned:    u.IsBanned(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
	}
}
