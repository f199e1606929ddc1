package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appUser "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// UserHandler is account self-service: the profile, the locale preference and
// the dashboard summary.
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

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.userSvc.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ToUserResponse(u))
}

type setLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

func (h *UserHandler) SetLocale(c *gin.Context) {
	var req setLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "locale is required")
		return
	}

	u, err := h.userSvc.SetLocale(c.Request.Context(), CurrentUserID(c), req.Locale)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "locale updated", ToUserResponse(u))
}

type dashboardResponse struct {
	Available   string `json:"available"`
	Reserved    string `json:"reserved"`
	Pending     string `json:"pending"`
	TotalEarned string `json:"total_earned"`
	TotalSpent  string `json:"total_spent"`
	AdCount     int64  `json:"ad_count"`
	BotCount    int    `json:"bot_count"`
}

func (h *UserHandler) Dashboard(c *gin.Context) {
	d, err := h.userSvc.GetDashboard(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dashboardResponse{
		Available:   d.Available.String(),
		Reserved:    d.Reserved.String(),
		Pending:     d.Pending.String(),
		TotalEarned: d.TotalEarned.String(),
		TotalSpent:  d.TotalSpent.String(),
		AdCount:     d.AdCount,
		BotCount:    d.BotCount,
	})
}
