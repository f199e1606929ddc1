package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appWithdrawal "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/withdrawal"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// WithdrawalHandler is the payout surface for bot owners: request, track and
// cancel withdrawals. Review actions live under the admin handlers.
type WithdrawalHandler struct {
	withdrawalSvc *appWithdrawal.Service
	logger        logger.Interface
}

func NewWithdrawalHandler(withdrawalSvc *appWithdrawal.Service, logger logger.Interface) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalSvc: withdrawalSvc,
		logger:        logger,
	}
}

type createWithdrawalRequest struct {
	Coin    string          `json:"coin" binding:"required"`
	Network string          `json:"network" binding:"required"`
	Address string          `json:"address" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// Create opens a withdrawal request and moves the amount into the reserved
// bucket until an admin settles it.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req createWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "coin, network, address and amount are required")
		return
	}

	network := vo.Network(req.Network)
	if !network.IsValid() {
		BadRequest(c, "unsupported network")
		return
	}
	if err := network.ValidateAddress(req.Address); err != nil {
		BadRequest(c, err.Error())
		return
	}

	wd, err := h.withdrawalSvc.Create(c.Request.Context(), CurrentUserID(c), req.Coin, network, req.Address, req.Amount)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.CreatedResponse(c, ToWithdrawalResponse(wd), "withdrawal requested")
}

func (h *WithdrawalHandler) Get(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixWithdraw, "withdrawal")
	if err != nil {
		return
	}
	wd, err := h.withdrawalSvc.Get(c.Request.Context(), sid, CurrentUserID(c), IsStaff(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", ToWithdrawalResponse(wd))
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	userID := CurrentUserID(c)
	filter := withdrawal.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		UserID:   &userID,
	}
	if s := c.Query("status"); s != "" {
		status := vo.WithdrawStatus(s)
		filter.Status = &status
	}

	items, total, err := h.withdrawalSvc.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	resp := make([]*WithdrawalResponse, 0, len(items))
	for _, wd := range items {
		resp = append(resp, ToWithdrawalResponse(wd))
	}
	utils.ListSuccessResponse(c, resp, total, p.Page, p.PageSize)
}

// Cancel withdraws the request while it still sits in the queue; the reserved
// amount returns to the available balance.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixWithdraw, "withdrawal")
	if err != nil {
		return
	}
	wd, err := h.withdrawalSvc.Cancel(c.Request.Context(), CurrentUserID(c), sid)
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "withdrawal cancelled", ToWithdrawalResponse(wd))
}

type WithdrawalResponse struct {
	ID          string     `json:"id"`
	Coin        string     `json:"coin"`
	Network     string     `json:"network"`
	Address     string     `json:"address"`
	Amount      string     `json:"amount"`
	Fee         string     `json:"fee"`
	NetAmount   string     `json:"net_amount"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	TxHash      string     `json:"tx_hash,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToWithdrawalResponse(w *withdrawal.WithdrawRequest) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:          w.SID(),
		Coin:        w.Coin(),
		Network:     w.Network().String(),
		Address:     w.Address(),
		Amount:      w.Amount().String(),
		Fee:         w.Fee().String(),
		NetAmount:   w.NetAmount().String(),
		Status:      w.Status().String(),
		Reason:      w.Reason(),
		TxHash:      w.TxHash(),
		ApprovedAt:  w.ApprovedAt(),
		CompletedAt: w.CompletedAt(),
		CreatedAt:   w.CreatedAt(),
		UpdatedAt:   w.UpdatedAt(),
	}
}
