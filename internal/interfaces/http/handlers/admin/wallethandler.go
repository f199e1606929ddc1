package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appUser "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/user"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// WalletHandler lets staff audit any user's money: the ledger-vs-wallet
// consistency check used when a balance dispute comes in.
type WalletHandler struct {
	walletSvc *appWallet.Service
	userSvc   *appUser.Service
	logger    logger.Interface
}

func NewWalletHandler(walletSvc *appWallet.Service, userSvc *appUser.Service, logger logger.Interface) *WalletHandler {
	return &WalletHandler{
		walletSvc: walletSvc,
		userSvc:   userSvc,
		logger:    logger,
	}
}

type verifyBalanceResponse struct {
	WalletTotal string `json:"wallet_total"`
	LedgerSum   string `json:"ledger_sum"`
	Difference  string `json:"difference"`
	Clean       bool   `json:"clean"`
}

// VerifyBalance replays the user's ledger and compares the sum against the
// stored wallet buckets.
func (h *WalletHandler) VerifyBalance(c *gin.Context) {
	userID, ok := h.resolveUserID(c)
	if !ok {
		return
	}

	result, err := h.walletSvc.VerifyBalance(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", verifyBalanceResponse{
		WalletTotal: result.WalletTotal.String(),
		LedgerSum:   result.LedgerSum.String(),
		Difference:  result.Difference.String(),
		Clean:       result.Clean,
	})
}

// resolveUserID accepts either a short id (usr_...) or a numeric id in the
// :id parameter.
func (h *WalletHandler) resolveUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return uint(parsed), true
	}

	sid, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		return 0, false
	}
	u, err := h.userSvc.GetBySID(c.Request.Context(), sid)
	if err != nil {
		handlers.RespondError(c, err)
		return 0, false
	}
	return u.ID(), true
}
