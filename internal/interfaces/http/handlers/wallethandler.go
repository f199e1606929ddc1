package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// WalletHandler exposes the caller's balance buckets and ledger history.
type WalletHandler struct {
	walletSvc *appWallet.Service
	logger    logger.Interface
}

func NewWalletHandler(walletSvc *appWallet.Service, logger logger.Interface) *WalletHandler {
	return &WalletHandler{
		walletSvc: walletSvc,
		logger:    logger,
	}
}

type walletResponse struct {
	ID             string `json:"id"`
	Available      string `json:"available"`
	Reserved       string `json:"reserved"`
	Pending        string `json:"pending"`
	TotalDeposited string `json:"total_deposited"`
	TotalWithdrawn string `json:"total_withdrawn"`
	TotalEarned    string `json:"total_earned"`
	TotalSpent     string `json:"total_spent"`
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	w, err := h.walletSvc.GetWallet(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toWalletResponse(w))
}

func toWalletResponse(w *wallet.Wallet) walletResponse {
	return walletResponse{
		ID:             w.SID(),
		Available:      w.Available().String(),
		Reserved:       w.Reserved().String(),
		Pending:        w.Pending().String(),
		TotalDeposited: w.TotalDeposited().String(),
		TotalWithdrawn: w.TotalWithdrawn().String(),
		TotalEarned:    w.TotalEarned().String(),
		TotalSpent:     w.TotalSpent().String(),
	}
}

type ledgerEntryResponse struct {
	ID          string    `json:"id"`
	EntryType   string    `json:"entry_type"`
	Amount      string    `json:"amount"`
	Balance     string    `json:"balance"`
	RefID       string    `json:"ref_id,omitempty"`
	RefType     string    `json:"ref_type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListLedger pages through the caller's signed ledger, newest first.
func (h *WalletHandler) ListLedger(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := wallet.LedgerFilter{
		Page:      p.Page,
		PageSize:  p.PageSize,
		EntryType: c.Query("entry_type"),
		RefType:   c.Query("ref_type"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
	}

	entries, total, err := h.walletSvc.ListLedger(c.Request.Context(), CurrentUserID(c), filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	items := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ledgerEntryResponse{
			ID:          e.SID(),
			EntryType:   e.EntryType().String(),
			Amount:      e.Amount().String(),
			Balance:     e.Balance().String(),
			RefID:       e.RefID(),
			RefType:     e.RefType(),
			Description: e.Description(),
			CreatedAt:   e.CreatedAt(),
		})
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}
