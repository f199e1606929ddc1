// Package admin holds the staff-only HTTP handlers. Route wiring puts the
// whole group behind authentication plus a permission check.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appUser "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// UserHandler manages accounts: listing, bans, role grants and manual
// balance corrections.
type UserHandler struct {
	userSvc *appUser.Service
	logger  logger.Interface
}

func NewUserHandler(userSvc *appUser.Service, logger logger.Interface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		logger:  logger,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := user.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		Role:     c.Query("role"),
		Search:   c.Query("search"),
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}
	if v := c.Query("is_banned"); v != "" {
		banned := v == "true"
		filter.IsBanned = &banned
	}

	users, total, err := h.userSvc.List(c.Request.Context(), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]*adminUserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toAdminUserResponse(u))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

func (h *UserHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return
	}
	u, err := h.userSvc.GetBySID(c.Request.Context(), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toAdminUserResponse(u))
}

type banRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *UserHandler) Ban(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return
	}
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "reason is required")
		return
	}

	u, err := h.userSvc.Ban(c.Request.Context(), handlers.CurrentUserID(c), sid, req.Reason)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "user banned", toAdminUserResponse(u))
}

func (h *UserHandler) Unban(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return
	}
	u, err := h.userSvc.Unban(c.Request.Context(), handlers.CurrentUserID(c), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "user unbanned", toAdminUserResponse(u))
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) GrantRole(c *gin.Context) {
	h.changeRole(c, h.userSvc.GrantRole, "role granted")
}

func (h *UserHandler) RevokeRole(c *gin.Context) {
	h.changeRole(c, h.userSvc.RevokeRole, "role revoked")
}

type adjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note" binding:"required"`
}

// AdjustBalance applies a signed manual correction to the user's wallet. The
// amount and the operator land in the audit log.
func (h *UserHandler) AdjustBalance(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return
	}
	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "amount and note are required")
		return
	}

	u, err := h.userSvc.AdjustBalance(c.Request.Context(), handlers.CurrentUserID(c), sid, req.Amount, req.Note)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "balance adjusted", toAdminUserResponse(u))
}

type roleChange func(ctx context.Context, adminID uint, sid, role string) (*user.User, error)

func (h *UserHandler) changeRole(c *gin.Context, op roleChange, message string) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "role is required")
		return
	}

	u, err := op(c.Request.Context(), handlers.CurrentUserID(c), sid, req.Role)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, toAdminUserResponse(u))
}

type adminUserResponse struct {
	*handlers.UserResponse
	IsActive  bool   `json:"is_active"`
	BanReason string `json:"ban_reason,omitempty"`
}

func toAdminUserResponse(u *user.User) *adminUserResponse {
	return &adminUserResponse{
		UserResponse: handlers.ToUserResponse(u),
		IsActive:     u.IsActive(),
		BanReason:    u.BanReason(),
	}
}
