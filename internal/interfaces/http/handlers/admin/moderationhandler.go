package admin

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appModeration "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// ModerationHandler is the review desk: pending queues, verdicts on ads and
// bots, and the audit trail behind each decision.
type ModerationHandler struct {
	moderationSvc *appModeration.Service
	logger        logger.Interface
}

func NewModerationHandler(moderationSvc *appModeration.Service, logger logger.Interface) *ModerationHandler {
	return &ModerationHandler{
		moderationSvc: moderationSvc,
		logger:        logger,
	}
}

func (h *ModerationHandler) PendingAds(c *gin.Context) {
	p := utils.ParsePagination(c)
	ads, total, err := h.moderationSvc.PendingAds(c.Request.Context(), p.PageSize, (p.Page-1)*p.PageSize)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]*handlers.AdResponse, 0, len(ads))
	for _, a := range ads {
		items = append(items, handlers.ToAdResponse(a))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

func (h *ModerationHandler) PendingBots(c *gin.Context) {
	p := utils.ParsePagination(c)
	bots, err := h.moderationSvc.PendingBots(c.Request.Context(), p.PageSize)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]*handlers.BotResponse, 0, len(bots))
	for _, b := range bots {
		items = append(items, handlers.ToBotResponse(b))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *ModerationHandler) ApproveAd(c *gin.Context) {
	h.adVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*ad.Ad, error) {
		return h.moderationSvc.ApproveAd(ctx, moderatorID, sid)
	}, "ad approved")
}

type verdictRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *ModerationHandler) RejectAd(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.adVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*ad.Ad, error) {
		return h.moderationSvc.RejectAd(ctx, moderatorID, sid, reason)
	}, "ad rejected")
}

// RequestAdEdit sends the ad back to the advertiser with feedback instead of
// a hard rejection; the escrowed budget stays reserved.
func (h *ModerationHandler) RequestAdEdit(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.adVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*ad.Ad, error) {
		return h.moderationSvc.RequestAdEdit(ctx, moderatorID, sid, reason)
	}, "edit requested")
}

func (h *ModerationHandler) ApproveBot(c *gin.Context) {
	h.botVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*bot.Bot, error) {
		return h.moderationSvc.ApproveBot(ctx, moderatorID, sid)
	}, "bot approved")
}

func (h *ModerationHandler) RejectBot(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.botVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*bot.Bot, error) {
		return h.moderationSvc.RejectBot(ctx, moderatorID, sid, reason)
	}, "bot rejected")
}

func (h *ModerationHandler) SuspendBot(c *gin.Context) {
	reason, ok := bindReason(c)
	if !ok {
		return
	}
	h.botVerdict(c, func(ctx context.Context, moderatorID uint, sid string) (*bot.Bot, error) {
		return h.moderationSvc.SuspendBot(ctx, moderatorID, sid, reason)
	}, "bot suspended")
}

type auditLogResponse struct {
	ModeratorID uint                   `json:"moderator_id"`
	Action      string                 `json:"action"`
	EntityType  string                 `json:"entity_type"`
	EntityID    string                 `json:"entity_id"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// AuditTrail lists the recorded decisions for one entity, newest first.
func (h *ModerationHandler) AuditTrail(c *gin.Context) {
	kind := moderation.Kind(c.Query("kind"))
	switch kind {
	case moderation.KindAd, moderation.KindBot, moderation.KindWithdrawal:
	default:
		handlers.BadRequest(c, "kind must be AD, BOT or WITHDRAWAL")
		return
	}
	entityID := c.Query("entity_id")
	if entityID == "" {
		handlers.BadRequest(c, "entity_id is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.moderationSvc.AuditTrail(c.Request.Context(), kind, entityID, limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]auditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, auditLogResponse{
			ModeratorID: l.ModeratorID(),
			Action:      l.Action(),
			EntityType:  l.EntityType(),
			EntityID:    l.EntityID(),
			Metadata:    l.Metadata(),
			CreatedAt:   l.CreatedAt(),
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func bindReason(c *gin.Context) (string, bool) {
	var req verdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "reason is required")
		return "", false
	}
	return req.Reason, true
}

func (h *ModerationHandler) adVerdict(c *gin.Context, op func(context.Context, uint, string) (*ad.Ad, error), message string) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixAd, "ad")
	if err != nil {
		return
	}
	a, err := op(c.Request.Context(), handlers.CurrentUserID(c), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, handlers.ToAdResponse(a))
}

func (h *ModerationHandler) botVerdict(c *gin.Context, op func(context.Context, uint, string) (*bot.Bot, error), message string) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixBot, "bot")
	if err != nil {
		return
	}
	b, err := op(c.Request.Context(), handlers.CurrentUserID(c), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, handlers.ToBotResponse(b))
}
