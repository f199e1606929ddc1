package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// ReconciliationHandler surfaces provider callbacks that matched no
// transaction so an operator can investigate and close them out.
type ReconciliationHandler struct {
	paymentSvc *appPayment.Service
	logger     logger.Interface
}

func NewReconciliationHandler(paymentSvc *appPayment.Service, logger logger.Interface) *ReconciliationHandler {
	return &ReconciliationHandler{
		paymentSvc: paymentSvc,
		logger:     logger,
	}
}

type reconciliationResponse struct {
	ID           uint      `json:"id"`
	Provider     string    `json:"provider"`
	ProviderTxID string    `json:"provider_tx_id"`
	Method       string    `json:"method"`
	RawPayload   string    `json:"raw_payload"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *ReconciliationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.paymentSvc.ListUnreconciled(c.Request.Context(), limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := make([]reconciliationResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, reconciliationResponse{
			ID:           e.ID(),
			Provider:     e.Provider().String(),
			ProviderTxID: e.ProviderTxID(),
			Method:       e.Method(),
			RawPayload:   e.RawPayload(),
			CreatedAt:    e.CreatedAt(),
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type resolveRequest struct {
	Note string `json:"note" binding:"required"`
}

func (h *ReconciliationHandler) Resolve(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		handlers.BadRequest(c, "invalid reconciliation entry id")
		return
	}
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "note is required")
		return
	}

	if err := h.paymentSvc.ResolveReconciliation(c.Request.Context(), uint(entryID), req.Note); err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "entry resolved", nil)
}
