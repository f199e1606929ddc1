package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// TierHandler manages the pricing catalog. The public side only ever sees
// active tiers; this surface sees and edits everything.
type TierHandler struct {
	pricingSvc *appPricing.Service
	logger     logger.Interface
}

func NewTierHandler(pricingSvc *appPricing.Service, logger logger.Interface) *TierHandler {
	return &TierHandler{
		pricingSvc: pricingSvc,
		logger:     logger,
	}
}

func (h *TierHandler) List(c *gin.Context) {
	tiers, err := h.pricingSvc.ListTiers(c.Request.Context(), true)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	items := make([]*handlers.TierResponse, 0, len(tiers))
	for _, t := range tiers {
		items = append(items, handlers.ToTierResponse(t))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type tierRequest struct {
	Name        string          `json:"name" binding:"required"`
	Impressions int64           `json:"impressions" binding:"required"`
	PriceUSD    decimal.Decimal `json:"price_usd" binding:"required"`
	SortOrder   int             `json:"sort_order"`
}

func (h *TierHandler) Create(c *gin.Context) {
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "name, impressions and price_usd are required")
		return
	}

	t, err := h.pricingSvc.CreateTier(c.Request.Context(), handlers.CurrentUserID(c),
		req.Name, req.Impressions, req.PriceUSD, req.SortOrder)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, handlers.ToTierResponse(t), "tier created")
}

func (h *TierHandler) Update(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTier, "tier")
	if err != nil {
		return
	}
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "name, impressions and price_usd are required")
		return
	}

	t, err := h.pricingSvc.UpdateTier(c.Request.Context(), handlers.CurrentUserID(c), sid,
		req.Name, req.Impressions, req.PriceUSD, req.SortOrder)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tier updated", handlers.ToTierResponse(t))
}

type tierActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles visibility without deleting history; running ads keep
// their captured price.
func (h *TierHandler) SetActive(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTier, "tier")
	if err != nil {
		return
	}
	var req tierActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BindingError(c, err)
		return
	}

	t, err := h.pricingSvc.SetTierActive(c.Request.Context(), handlers.CurrentUserID(c), sid, req.Active)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tier visibility updated", handlers.ToTierResponse(t))
}

func (h *TierHandler) Delete(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTier, "tier")
	if err != nil {
		return
	}
	if err := h.pricingSvc.DeleteTier(c.Request.Context(), handlers.CurrentUserID(c), sid); err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "tier deleted", nil)
}
