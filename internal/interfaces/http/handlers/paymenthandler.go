package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// PaymentHandler covers deposit initiation and transaction history for the
// authenticated user.
type PaymentHandler struct {
	paymentSvc *appPayment.Service
	logger     logger.Interface
}

func NewPaymentHandler(paymentSvc *appPayment.Service, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
		logger:     logger,
	}
}

type depositRequest struct {
	Provider string          `json:"provider" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`

	// Coin and Network apply to cryptopay deposits only.
	Coin    string `json:"coin"`
	Network string `json:"network"`
}

// InitiateDeposit opens a pending transaction with the chosen provider. The
// money arrives later through the provider's webhook.
func (h *PaymentHandler) InitiateDeposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "provider and amount are required")
		return
	}

	provider := vo.Provider(req.Provider)
	if !provider.IsValid() || !provider.IsExternal() {
		BadRequest(c, "unsupported payment provider")
		return
	}

	var (
		tx  *payment.Transaction
		err error
	)
	if provider == vo.ProviderCryptopay {
		tx, err = h.paymentSvc.InitiateCryptoDeposit(c.Request.Context(), CurrentUserID(c), req.Coin, req.Network, req.Amount)
	} else {
		tx, err = h.paymentSvc.InitiateDeposit(c.Request.Context(), CurrentUserID(c), provider, req.Amount)
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, ToTransactionResponse(tx), "deposit initiated")
}

func (h *PaymentHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixTransaction, "transaction")
	if err != nil {
		return
	}
	tx, err := h.paymentSvc.GetTransaction(c.Request.Context(), sid, CurrentUserID(c), IsStaff(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ToTransactionResponse(tx))
}

func (h *PaymentHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	userID := CurrentUserID(c)
	filter := payment.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		UserID:   &userID,
	}
	if t := c.Query("type"); t != "" {
		txType := vo.TransactionType(t)
		filter.Type = &txType
	}
	if pr := c.Query("provider"); pr != "" {
		provider := vo.Provider(pr)
		filter.Provider = &provider
	}
	if s := c.Query("status"); s != "" {
		status := vo.TransactionStatus(s)
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
		RespondError(c, err)
		return
	}

	items := make([]*TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, ToTransactionResponse(tx))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

type TransactionResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Provider    string     `json:"provider"`
	Coin        string     `json:"coin,omitempty"`
	Network     string     `json:"network,omitempty"`
	Amount      string     `json:"amount"`
	Fee         string     `json:"fee"`
	Status      string     `json:"status"`
	FailReason  string     `json:"fail_reason,omitempty"`
	PerformedAt *time.Time `json:"performed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToTransactionResponse(tx *payment.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          tx.SID(),
		Type:        tx.Type().String(),
		Provider:    tx.Provider().String(),
		Coin:        tx.Coin(),
		Network:     tx.Network(),
		Amount:      tx.Amount().String(),
		Fee:         tx.Fee().String(),
		Status:      tx.Status().String(),
		FailReason:  tx.FailReason(),
		PerformedAt: tx.PerformedAt(),
		CreatedAt:   tx.CreatedAt(),
	}
}
