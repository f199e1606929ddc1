package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Error codes of the prepare/complete protocol.
const (
	clickOK             = 0
	clickErrSignature   = -1
	clickErrAmount      = -2
	clickErrAlreadyPaid = -4
	clickErrTxNotFound  = -5
	clickErrSystem      = -9
)

// Webhook actions.
const (
	clickActionPrepare  = 0
	clickActionComplete = 1
)

// ClickRequest is one prepare or complete callback. Field names follow the
// gateway's form parameters.
type ClickRequest struct {
	ClickTransID      int64  `form:"click_trans_id" json:"click_trans_id"`
	ServiceID         string `form:"service_id" json:"service_id"`
	MerchantTransID   string `form:"merchant_trans_id" json:"merchant_trans_id"`
	MerchantPrepareID int64  `form:"merchant_prepare_id" json:"merchant_prepare_id"`
	Amount            string `form:"amount" json:"amount"`
	Action            int    `form:"action" json:"action"`
	Error             int    `form:"error" json:"error"`
	ErrorNote         string `form:"error_note" json:"error_note"`
	SignTime          string `form:"sign_time" json:"sign_time"`
	SignString        string `form:"sign_string" json:"sign_string"`
}

// ClickResponse is the merchant's reply; Error 0 accepts the callback.
type ClickResponse struct {
	ClickTransID      int64  `json:"click_trans_id"`
	MerchantTransID   string `json:"merchant_trans_id"`
	MerchantPrepareID int64  `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID int64  `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}

// ClickAdapter speaks the signed prepare/complete webhook protocol. The
// callback amount arrives in soum and is converted before matching.
type ClickAdapter struct {
	svc       *Service
	conv      *AmountConverter
	serviceID string
	secret    string
	logger    logger.Interface
}

func NewClickAdapter(svc *Service, conv *AmountConverter, serviceID, secret string, logger logger.Interface) *ClickAdapter {
	return &ClickAdapter{
		svc:       svc,
		conv:      conv,
		serviceID: serviceID,
		secret:    secret,
		logger:    logger.With("component", "click_adapter"),
	}
}

// Prepare validates the callback and binds the gateway's transaction id.
// MerchantPrepareID in the reply is echoed back on complete.
func (a *ClickAdapter) Prepare(ctx context.Context, req ClickRequest) ClickResponse {
	resp := ClickResponse{ClickTransID: req.ClickTransID, MerchantTransID: req.MerchantTransID}
	if !a.validSignature(req) {
		resp.Error, resp.ErrorNote = clickErrSignature, "invalid signature"
		return resp
	}

	usd, err := a.callbackUSD(req.Amount)
	if err != nil {
		resp.Error, resp.ErrorNote = clickErrAmount, "invalid amount"
		return resp
	}

	err = a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx, err := a.svc.txRepo.GetBySIDForUpdate(txCtx, req.MerchantTransID)
		if err != nil {
			a.svc.recordUnmatched(txCtx, vo.ProviderClick, strconv.FormatInt(req.ClickTransID, 10), "prepare", clickRawPayload(req))
			resp.Error, resp.ErrorNote = clickErrTxNotFound, "transaction not found"
			return nil
		}
		if tx.Status().IsSuccess() {
			resp.Error, resp.ErrorNote = clickErrAlreadyPaid, "already paid"
			return nil
		}
		if tx.Status() == vo.TransactionStatusFailed {
			resp.Error, resp.ErrorNote = clickErrSystem, "transaction cancelled"
			return nil
		}
		if !tx.AmountMatches(usd, callbackTolerance) {
			resp.Error, resp.ErrorNote = clickErrAmount, "amount mismatch"
			return nil
		}
		if err := tx.BindProvider(strconv.FormatInt(req.ClickTransID, 10)); err != nil {
			resp.Error, resp.ErrorNote = clickErrSystem, "transaction already bound"
			return nil
		}
		if err := a.svc.txRepo.Update(txCtx, tx); err != nil {
			return err
		}
		resp.MerchantPrepareID = int64(tx.ID())
		resp.ErrorNote = "success"
		return nil
	})
	if err != nil {
		a.logger.Errorw("prepare failed", "error", err, "click_trans_id", req.ClickTransID)
		resp.Error, resp.ErrorNote = clickErrSystem, "internal error"
	}
	return resp
}

// Complete settles the transaction when the gateway reports success, and
// fails it when the gateway cancelled. Duplicate completes observe the
// settled state and reply identically without a second credit.
func (a *ClickAdapter) Complete(ctx context.Context, req ClickRequest) ClickResponse {
	resp := ClickResponse{ClickTransID: req.ClickTransID, MerchantTransID: req.MerchantTransID}
	if !a.validSignature(req) {
		resp.Error, resp.ErrorNote = clickErrSignature, "invalid signature"
		return resp
	}

	usd, err := a.callbackUSD(req.Amount)
	if err != nil {
		resp.Error, resp.ErrorNote = clickErrAmount, "invalid amount"
		return resp
	}

	var credited *payment.Transaction
	err = a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx, err := a.svc.txRepo.GetBySIDForUpdate(txCtx, req.MerchantTransID)
		if err != nil {
			a.svc.recordUnmatched(txCtx, vo.ProviderClick, strconv.FormatInt(req.ClickTransID, 10), "complete", clickRawPayload(req))
			resp.Error, resp.ErrorNote = clickErrTxNotFound, "transaction not found"
			return nil
		}
		if req.MerchantPrepareID != int64(tx.ID()) {
			resp.Error, resp.ErrorNote = clickErrTxNotFound, "unknown prepare id"
			return nil
		}

		if req.Error < 0 {
			reason := req.Error
			if err := a.svc.failDeposit(txCtx, tx, "cancelled by gateway", &reason); err != nil {
				resp.Error, resp.ErrorNote = clickErrSystem, "cannot cancel"
				return nil
			}
			resp.Error, resp.ErrorNote = clickErrSystem, "transaction cancelled"
			return nil
		}

		if tx.Status().IsSuccess() {
			// duplicate complete, reply as the first one did
			resp.MerchantConfirmID = int64(tx.ID())
			resp.ErrorNote = "success"
			return nil
		}
		if tx.Status() == vo.TransactionStatusFailed {
			resp.Error, resp.ErrorNote = clickErrSystem, "transaction cancelled"
			return nil
		}
		if !tx.AmountMatches(usd, callbackTolerance) {
			resp.Error, resp.ErrorNote = clickErrAmount, "amount mismatch"
			return nil
		}
		if err := a.svc.settleDeposit(txCtx, tx); err != nil {
			return err
		}
		credited = tx
		resp.MerchantConfirmID = int64(tx.ID())
		resp.ErrorNote = "success"
		return nil
	})
	if err != nil {
		a.logger.Errorw("complete failed", "error", err, "click_trans_id", req.ClickTransID)
		resp.Error, resp.ErrorNote = clickErrSystem, "internal error"
		return resp
	}
	if credited != nil {
		a.logger.Infow("deposit settled via gateway",
			"tx_sid", credited.SID(), "provider", vo.ProviderClick, "amount", credited.Amount())
		a.svc.notifyCredited(ctx, credited)
	}
	return resp
}

// validSignature recomputes the MD5 chain. Complete requests additionally
// fold merchant_prepare_id in after merchant_trans_id.
func (a *ClickAdapter) validSignature(req ClickRequest) bool {
	prepareID := ""
	if req.Action == clickActionComplete {
		prepareID = strconv.FormatInt(req.MerchantPrepareID, 10)
	}
	payload := fmt.Sprintf("%d%s%s%s%s%s%d%s",
		req.ClickTransID,
		a.serviceID,
		a.secret,
		req.MerchantTransID,
		prepareID,
		req.Amount,
		req.Action,
		req.SignTime,
	)
	sum := md5.Sum([]byte(payload))
	return constantTimeEqual(hex.EncodeToString(sum[:]), req.SignString)
}

func (a *ClickAdapter) callbackUSD(amount string) (decimal.Decimal, error) {
	soum, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return a.conv.UZSToUSD(soum), nil
}

// clickRawPayload renders the callback for the reconciliation log.
func clickRawPayload(req ClickRequest) string {
	return fmt.Sprintf(
		"click_trans_id=%d&service_id=%s&merchant_trans_id=%s&merchant_prepare_id=%d&amount=%s&action=%d&error=%d&sign_time=%s",
		req.ClickTransID, req.ServiceID, req.MerchantTransID, req.MerchantPrepareID,
		req.Amount, req.Action, req.Error, req.SignTime,
	)
}
