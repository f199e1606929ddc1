package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// PricingHandler is the public pricing surface: the active tier catalog and
// the cost calculator advertisers use before committing a draft.
type PricingHandler struct {
	pricingSvc *appPricing.Service
	logger     logger.Interface
}

func NewPricingHandler(pricingSvc *appPricing.Service, logger logger.Interface) *PricingHandler {
	return &PricingHandler{
		pricingSvc: pricingSvc,
		logger:     logger,
	}
}

func (h *PricingHandler) ListTiers(c *gin.Context) {
	tiers, err := h.pricingSvc.ListTiers(c.Request.Context(), false)
	if err != nil {
		RespondError(c, err)
		return
	}
	items := make([]*TierResponse, 0, len(tiers))
	for _, t := range tiers {
		items = append(items, ToTierResponse(t))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type quoteRequest struct {
	TierID            string          `json:"tier_id"`
	TargetImpressions int64           `json:"target_impressions" binding:"required"`
	Category          string          `json:"category"`
	AISegments        []string        `json:"ai_segments"`
	HasSpecificBots   bool            `json:"has_specific_bots"`
	LanguageCount     int             `json:"language_count"`
	CPMBid            decimal.Decimal `json:"cpm_bid"`
	PromoKind         string          `json:"promo_kind"`
	PromoValue        decimal.Decimal `json:"promo_value"`
}

type quoteResponse struct {
	Tier                 *TierResponse `json:"tier,omitempty"`
	BaseCPM              string        `json:"base_cpm"`
	CategoryMultiplier   string        `json:"category_multiplier"`
	TargetingMultiplier  string        `json:"targeting_multiplier"`
	AdjustedCPM          string        `json:"adjusted_cpm"`
	FinalCPM             string        `json:"final_cpm"`
	BaseCost             string        `json:"base_cost"`
	Discount             string        `json:"discount"`
	FinalCost            string        `json:"final_cost"`
	PlatformFee          string        `json:"platform_fee"`
	BotOwnerRevenue      string        `json:"bot_owner_revenue"`
	TotalCost            string        `json:"total_cost"`
	RevenuePerImpression string        `json:"revenue_per_impression"`
}

// Quote prices an order without creating anything. The same engine runs on
// ad creation, so the preview always matches the charge.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "target_impressions is required")
		return
	}

	quote, err := h.pricingSvc.QuoteAdCost(c.Request.Context(), appPricing.QuoteInput{
		TierSID:         req.TierID,
		Impressions:     req.TargetImpressions,
		Category:        req.Category,
		AISegments:      req.AISegments,
		HasSpecificBots: req.HasSpecificBots,
		LanguageCount:   req.LanguageCount,
		CPMBid:          req.CPMBid,
		PromoKind:       req.PromoKind,
		PromoValue:      req.PromoValue,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	b := quote.Breakdown
	resp := quoteResponse{
		BaseCPM:              b.BaseCPM.String(),
		CategoryMultiplier:   b.CategoryMultiplier.String(),
		TargetingMultiplier:  b.TargetingMultiplier.String(),
		AdjustedCPM:          b.AdjustedCPM.String(),
		FinalCPM:             b.FinalCPM.String(),
		BaseCost:             b.BaseCost.String(),
		Discount:             b.Discount.String(),
		FinalCost:            b.FinalCost.String(),
		PlatformFee:          b.PlatformFee.String(),
		BotOwnerRevenue:      b.BotOwnerRevenue.String(),
		TotalCost:            b.TotalCost.String(),
		RevenuePerImpression: b.RevenuePerImpression.String(),
	}
	if quote.Tier != nil {
		resp.Tier = ToTierResponse(quote.Tier)
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

type TierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Impressions int64     `json:"impressions"`
	PriceUSD    string    `json:"price_usd"`
	BaseCPM     string    `json:"base_cpm"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToTierResponse(t *pricing.Tier) *TierResponse {
	return &TierResponse{
		ID:          t.SID(),
		Name:        t.Name(),
		Impressions: t.Impressions(),
		PriceUSD:    t.PriceUSD().String(),
		BaseCPM:     t.BaseCPM().String(),
		IsActive:    t.IsActive(),
		SortOrder:   t.SortOrder(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
