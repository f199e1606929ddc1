package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appWithdrawal "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/withdrawal"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// WithdrawalHandler is the payout review desk. Each request passes through
// take-for-review before a verdict, so two admins never settle the same one.
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

func (h *WithdrawalHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := withdrawal.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if s := c.Query("status"); s != "" {
		status := vo.WithdrawStatus(s)
		filter.Status = &status
	}
	if v := c.Query("user_id"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			userID := uint(parsed)
			filter.UserID = &userID
		}
	}

	items, total, err := h.withdrawalSvc.List(c.Request.Context(), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	resp := make([]*handlers.WithdrawalResponse, 0, len(items))
	for _, wd := range items {
		resp = append(resp, handlers.ToWithdrawalResponse(wd))
	}
	utils.ListSuccessResponse(c, resp, total, p.Page, p.PageSize)
}

func (h *WithdrawalHandler) TakeForReview(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixWithdraw, "withdrawal")
	if err != nil {
		return
	}
	wd, err := h.withdrawalSvc.TakeForReview(c.Request.Context(), handlers.CurrentUserID(c), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "withdrawal taken for review", handlers.ToWithdrawalResponse(wd))
}

type approveWithdrawalRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// Approve settles the payout: the reserved amount leaves the wallet for good
// and the on-chain hash is recorded.
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixWithdraw, "withdrawal")
	if err != nil {
		return
	}
	var req approveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "tx_hash is required")
		return
	}

	wd, err := h.withdrawalSvc.Approve(c.Request.Context(), handlers.CurrentUserID(c), sid, req.TxHash)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "withdrawal approved", handlers.ToWithdrawalResponse(wd))
}

type rejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject returns the reserved amount to the user's available balance.
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixWithdraw, "withdrawal")
	if err != nil {
		return
	}
	var req rejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, "reason is required")
		return
	}

	wd, err := h.withdrawalSvc.Reject(c.Request.Context(), handlers.CurrentUserID(c), sid, req.Reason)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "withdrawal rejected", handlers.ToWithdrawalResponse(wd))
}
