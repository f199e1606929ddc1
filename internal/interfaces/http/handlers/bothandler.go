package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appBot "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// BotHandler is the bot-owner surface: registering inventory, key management,
// delivery preferences and earnings stats.
type BotHandler struct {
	botSvc *appBot.Service
	logger logger.Interface
}

func NewBotHandler(botSvc *appBot.Service, logger logger.Interface) *BotHandler {
	return &BotHandler{
		botSvc: botSvc,
		logger: logger,
	}
}

type registerBotRequest struct {
	Token    string `json:"token" binding:"required"`
	Username string `json:"username" binding:"required"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Language string `json:"language"`
}

type registeredBotResponse struct {
	Bot    *BotResponse `json:"bot"`
	APIKey string       `json:"api_key"`
}

// Register enrolls a bot. The API key in the response is shown exactly once;
// only its hash is stored.
func (h *BotHandler) Register(c *gin.Context) {
	var req registerBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	result, err := h.botSvc.Register(c.Request.Context(), appBot.RegisterCommand{
		OwnerID:  CurrentUserID(c),
		Token:    req.Token,
		Username: req.Username,
		Title:    req.Title,
		Category: req.Category,
		Language: req.Language,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, registeredBotResponse{
		Bot:    ToBotResponse(result.Bot),
		APIKey: result.APIKey,
	}, "bot registered, save the api key now")
}

func (h *BotHandler) List(c *gin.Context) {
	bots, err := h.botSvc.ListByOwner(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	items := make([]*BotResponse, 0, len(bots))
	for _, b := range bots {
		items = append(items, ToBotResponse(b))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *BotHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	b, err := h.botSvc.Get(c.Request.Context(), sid, CurrentUserID(c), IsStaff(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ToBotResponse(b))
}

// RotateKey mints a replacement API key, invalidating the old one immediately.
func (h *BotHandler) RotateKey(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	result, err := h.botSvc.RotateKey(c.Request.Context(), CurrentUserID(c), sid)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "api key rotated, save the new key now", registeredBotResponse{
		Bot:    ToBotResponse(result.Bot),
		APIKey: result.APIKey,
	})
}

func (h *BotHandler) RevokeKey(c *gin.Context) {
	h.lifecycle(c, h.botSvc.RevokeKey, "api key revoked")
}

func (h *BotHandler) Pause(c *gin.Context) {
	h.lifecycle(c, h.botSvc.Pause, "bot paused")
}

func (h *BotHandler) Resume(c *gin.Context) {
	h.lifecycle(c, h.botSvc.Resume, "bot resumed")
}

type updateBotProfileRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Language    string `json:"language"`
}

func (h *BotHandler) UpdateProfile(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	var req updateBotProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	b, err := h.botSvc.UpdateProfile(c.Request.Context(), CurrentUserID(c), sid,
		req.Title, req.Description, req.Category, req.Language)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "bot profile updated", ToBotResponse(b))
}

type blockedCategoriesRequest struct {
	Categories []string `json:"categories"`
}

// SetBlockedCategories lets the owner refuse ad categories for this bot.
func (h *BotHandler) SetBlockedCategories(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	var req blockedCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	b, err := h.botSvc.SetBlockedCategories(c.Request.Context(), CurrentUserID(c), sid, req.Categories)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "blocked categories updated", ToBotResponse(b))
}

type frequencyRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

func (h *BotHandler) SetFrequency(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	var req frequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "minutes is required")
		return
	}

	b, err := h.botSvc.SetFrequency(c.Request.Context(), CurrentUserID(c), sid, req.Minutes)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "ad frequency updated", ToBotResponse(b))
}

type botStatsResponse struct {
	Impressions    int64  `json:"impressions"`
	Clicks         int64  `json:"clicks"`
	Revenue        string `json:"revenue"`
	OwnerEarnings  string `json:"owner_earnings"`
	PlatformFee    string `json:"platform_fee"`
	AudienceTotal  int64  `json:"audience_total"`
	AudienceActive int64  `json:"audience_active"`
}

func (h *BotHandler) Stats(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	stats, err := h.botSvc.Stats(c.Request.Context(), sid, CurrentUserID(c), IsStaff(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", botStatsResponse{
		Impressions:    stats.Impressions,
		Clicks:         stats.Clicks,
		Revenue:        stats.Revenue.String(),
		OwnerEarnings:  stats.OwnerEarnings.String(),
		PlatformFee:    stats.PlatformFee.String(),
		AudienceTotal:  stats.AudienceTotal,
		AudienceActive: stats.AudienceActive,
	})
}

func (h *BotHandler) lifecycle(c *gin.Context, op func(ctx context.Context, ownerID uint, sid string) (*bot.Bot, error), message string) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	b, err := op(c.Request.Context(), CurrentUserID(c), sid)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, ToBotResponse(b))
}

type BotResponse struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Title             string     `json:"title,omitempty"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	IsPaused          bool       `json:"is_paused"`
	IsMonetized       bool       `json:"is_monetized"`
	Category          string     `json:"category,omitempty"`
	Language          string     `json:"language,omitempty"`
	TotalMembers      int64      `json:"total_members"`
	ActiveMembers     int64      `json:"active_members"`
	BlockedCategories []string   `json:"blocked_categories,omitempty"`
	FrequencyMinutes  int        `json:"frequency_minutes"`
	TotalEarnings     string     `json:"total_earnings"`
	PendingEarnings   string     `json:"pending_earnings"`
	RejectReason      string     `json:"reject_reason,omitempty"`
	SuspendReason     string     `json:"suspend_reason,omitempty"`
	APIKeyIssuedAt    *time.Time `json:"api_key_issued_at,omitempty"`
	APIKeyRevoked     bool       `json:"api_key_revoked"`
	LastServedAt      *time.Time `json:"last_served_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func ToBotResponse(b *bot.Bot) *BotResponse {
	resp := &BotResponse{
		ID:                b.SID(),
		Username:          b.Username(),
		Title:             b.Title(),
		Description:       b.Description(),
		Status:            b.Status().String(),
		IsPaused:          b.IsPaused(),
		IsMonetized:       b.IsMonetized(),
		Category:          b.Category(),
		Language:          b.Language(),
		TotalMembers:      b.TotalMembers(),
		ActiveMembers:     b.ActiveMembers(),
		BlockedCategories: b.BlockedCategories(),
		FrequencyMinutes:  b.FrequencyMinutes(),
		TotalEarnings:     b.TotalEarnings().String(),
		PendingEarnings:   b.PendingEarnings().String(),
		RejectReason:      b.RejectReason(),
		SuspendReason:     b.SuspendReason(),
		APIKeyRevoked:     b.IsAPIKeyRevoked(),
		LastServedAt:      b.LastServedAt(),
		CreatedAt:         b.CreatedAt(),
	}
	if issued := b.APIKeyIssuedAt(); !issued.IsZero() {
		resp.APIKeyIssuedAt = &issued
	}
	return resp
}
