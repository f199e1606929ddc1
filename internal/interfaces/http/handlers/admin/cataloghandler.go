package admin

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	adUC "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/ad/usecases"
	appBot "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/bot"
	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	botvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	payvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// CatalogHandler gives staff the unfiltered listings: every ad, every bot,
// every transaction on the platform.
type CatalogHandler struct {
	listAdsUC  *adUC.ListAdsUseCase
	botSvc     *appBot.Service
	paymentSvc *appPayment.Service
	logger     logger.Interface
}

func NewCatalogHandler(
	listAdsUC *adUC.ListAdsUseCase,
	botSvc *appBot.Service,
	paymentSvc *appPayment.Service,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		listAdsUC:  listAdsUC,
		botSvc:     botSvc,
		paymentSvc: paymentSvc,
		logger:     logger,
	}
}

func (h *CatalogHandler) ListAds(c *gin.Context) {
	p := utils.ParsePagination(c)
	q := adUC.ListAdsQuery{
		IsAdmin:  true,
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if v := c.Query("archived"); v != "" {
		archived := v == "true"
		q.Archived = &archived
	}

	ads, total, err := h.listAdsUC.Execute(c.Request.Context(), q)
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

func (h *CatalogHandler) ListBots(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := bot.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		Search:   c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status := botvo.BotStatus(s)
		filter.Status = &status
	}
	if v := c.Query("owner_id"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			ownerID := uint(parsed)
			filter.OwnerID = &ownerID
		}
	}

	bots, total, err := h.botSvc.List(c.Request.Context(), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	items := make([]*handlers.BotResponse, 0, len(bots))
	for _, b := range bots {
		items = append(items, handlers.ToBotResponse(b))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

func (h *CatalogHandler) ListTransactions(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := payment.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if v := c.Query("user_id"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			userID := uint(parsed)
			filter.UserID = &userID
		}
	}
	if t := c.Query("type"); t != "" {
		txType := payvo.TransactionType(t)
		filter.Type = &txType
	}
	if pr := c.Query("provider"); pr != "" {
		provider := payvo.Provider(pr)
		filter.Provider = &provider
	}
	if s := c.Query("status"); s != "" {
		status := payvo.TransactionStatus(s)
		filter.Status = &status
	}
	if from := c.Query("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &ts
		}
	}
	if to := c.Query("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &ts
		}
	}

	txs, total, err := h.paymentSvc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	items := make([]*handlers.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, handlers.ToTransactionResponse(tx))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}
