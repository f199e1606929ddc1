package payment

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// JSON-RPC error catalog of the gateway. Raw internal errors never cross the
// wire; everything maps to one of these.
const (
	paymeErrOrderNotFound  = -31050
	paymeErrAmountMismatch = -31001
	paymeErrTxNotFound     = -31003
	paymeErrCannotCancel   = -31007
	paymeErrInternal       = -31008
	paymeErrUnauthorized   = -32504
	paymeErrMethodNotFound = -32601
	paymeErrInvalidRequest = -32600
)

// Transaction states on the wire.
const (
	paymeStatePending   = 1
	paymeStatePerformed = 2
	paymeStateCancelled = -1
)

const paymeAuthUser = "Paycom"

// PaymeRequest is one JSON-RPC call from the gateway.
type PaymeRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// PaymeResponse is the JSON-RPC reply; exactly one of Result and Error is
// set. Always delivered with HTTP 200.
type PaymeResponse struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result interface{}     `json:"result,omitempty"`
	Error  *PaymeError     `json:"error,omitempty"`
}

type PaymeError struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    string `json:"data,omitempty"`
}

type paymeAccount struct {
	OrderID string `json:"order_id"`
}

type paymeCheckPerformParams struct {
	Amount  int64        `json:"amount"`
	Account paymeAccount `json:"account"`
}

type paymeCreateParams struct {
	ID      string       `json:"id"`
	Time    int64        `json:"time"`
	Amount  int64        `json:"amount"`
	Account paymeAccount `json:"account"`
}

type paymeTxParams struct {
	ID string `json:"id"`
}

type paymeCancelParams struct {
	ID     string `json:"id"`
	Reason int    `json:"reason"`
}

type paymeStatementParams struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// paymeStatementTx is one transaction in a GetStatement reply.
type paymeStatementTx struct {
	ID          string       `json:"id"`
	Time        int64        `json:"time"`
	Amount      int64        `json:"amount"`
	Account     paymeAccount `json:"account"`
	CreateTime  int64        `json:"create_time"`
	PerformTime int64        `json:"perform_time"`
	CancelTime  int64        `json:"cancel_time"`
	Transaction string       `json:"transaction"`
	State       int          `json:"state"`
	Reason      *int         `json:"reason"`
}

// PaymeAdapter speaks the gateway's merchant JSON-RPC protocol. Each call is
// authorized by Basic auth, dispatched by method name, and answered from the
// transaction's current state so repeated callbacks reply identically.
type PaymeAdapter struct {
	svc     *Service
	conv    *AmountConverter
	key     string
	testKey string
	logger  logger.Interface
}

func NewPaymeAdapter(svc *Service, conv *AmountConverter, key, testKey string, logger logger.Interface) *PaymeAdapter {
	return &PaymeAdapter{
		svc:     svc,
		conv:    conv,
		key:     key,
		testKey: testKey,
		logger:  logger.With("component", "payme_adapter"),
	}
}

// Handle authorizes and dispatches one JSON-RPC call. The reply is always a
// well-formed response object; protocol errors ride in its error field.
func (a *PaymeAdapter) Handle(ctx context.Context, authHeader string, body []byte) PaymeResponse {
	var req PaymeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return paymeFail(nil, paymeErrInvalidRequest, "invalid request")
	}

	if !a.authorized(authHeader) {
		a.logger.Warnw("unauthorized gateway call", "method", req.Method)
		return paymeFail(req.ID, paymeErrUnauthorized, "unauthorized")
	}

	var (
		result interface{}
		perr   *PaymeError
	)
	switch req.Method {
	case "CheckPerformTransaction":
		result, perr = a.checkPerform(ctx, req.Params)
	case "CreateTransaction":
		result, perr = a.create(ctx, req.Params, string(body))
	case "PerformTransaction":
		result, perr = a.perform(ctx, req.Params, string(body))
	case "CancelTransaction":
		result, perr = a.cancel(ctx, req.Params)
	case "CheckTransaction":
		result, perr = a.check(ctx, req.Params)
	case "GetStatement":
		result, perr = a.statement(ctx, req.Params)
	default:
		perr = &PaymeError{Code: paymeErrMethodNotFound, Message: "method not found"}
	}

	if perr != nil {
		return PaymeResponse{ID: req.ID, Error: perr}
	}
	return PaymeResponse{ID: req.ID, Result: result}
}

func (a *PaymeAdapter) authorized(authHeader string) bool {
	const prefix = "Basic "
	if !strings.HasPrefix(authHeader, prefix) {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, prefix))
	if err != nil {
		return false
	}
	login, secret, ok := strings.Cut(string(decoded), ":")
	if !ok || login != paymeAuthUser {
		return false
	}
	return constantTimeEqual(secret, a.key) || (a.testKey != "" && constantTimeEqual(secret, a.testKey))
}

// checkPerform verifies the order exists, is still payable, and the amount
// matches.
func (a *PaymeAdapter) checkPerform(ctx context.Context, raw json.RawMessage) (interface{}, *PaymeError) {
	var p paymeCheckPerformParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	tx, err := a.svc.txRepo.GetBySID(ctx, p.Account.OrderID)
	if err != nil {
		return nil, &PaymeError{Code: paymeErrOrderNotFound, Message: "order not found"}
	}
	if tx.Status().IsSuccess() {
		return nil, &PaymeError{Code: paymeErrOrderNotFound, Message: "order already paid"}
	}
	if !tx.AmountMatches(a.conv.TiyinToUSD(p.Amount), callbackTolerance) {
		return nil, &PaymeError{Code: paymeErrAmountMismatch, Message: "amount mismatch"}
	}
	return map[string]interface{}{"allow": true}, nil
}

// create binds the gateway's transaction id to the order. A repeat with the
// same id replies with the original create time and the current state.
func (a *PaymeAdapter) create(ctx context.Context, raw json.RawMessage, rawBody string) (interface{}, *PaymeError) {
	var p paymeCreateParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	var result interface{}
	var perr *PaymeError
	err := a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.svc.txRepo.GetByProviderTxIDForUpdate(txCtx, vo.ProviderPayme, p.ID)
		if err == nil {
			if existing.SID() != p.Account.OrderID {
				perr = &PaymeError{Code: paymeErrOrderNotFound, Message: "order mismatch"}
				return nil
			}
			result = map[string]interface{}{
				"create_time": unixMilli(existing.ProviderBoundAt()),
				"transaction": existing.SID(),
				"state":       paymeState(existing),
			}
			return nil
		}

		tx, err := a.svc.txRepo.GetBySIDForUpdate(txCtx, p.Account.OrderID)
		if err != nil {
			a.svc.recordUnmatched(txCtx, vo.ProviderPayme, p.ID, "CreateTransaction", rawBody)
			perr = &PaymeError{Code: paymeErrOrderNotFound, Message: "order not found"}
			return nil
		}
		if !tx.AmountMatches(a.conv.TiyinToUSD(p.Amount), callbackTolerance) {
			perr = &PaymeError{Code: paymeErrAmountMismatch, Message: "amount mismatch"}
			return nil
		}
		if err := tx.BindProvider(p.ID); err != nil {
			// already bound to another gateway transaction, or final
			perr = &PaymeError{Code: paymeErrOrderNotFound, Message: "order cannot accept transaction"}
			return nil
		}
		if err := a.svc.txRepo.Update(txCtx, tx); err != nil {
			return err
		}
		result = map[string]interface{}{
			"create_time": unixMilli(tx.ProviderBoundAt()),
			"transaction": tx.SID(),
			"state":       paymeStatePending,
		}
		return nil
	})
	if err != nil {
		a.logger.Errorw("CreateTransaction failed", "error", err, "provider_tx_id", p.ID)
		return nil, &PaymeError{Code: paymeErrInternal, Message: "internal error"}
	}
	return result, perr
}

// perform settles the transaction and credits the wallet exactly once. A
// second call observes SUCCESS and echoes the original perform time.
func (a *PaymeAdapter) perform(ctx context.Context, raw json.RawMessage, rawBody string) (interface{}, *PaymeError) {
	var p paymeTxParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	var result interface{}
	var perr *PaymeError
	var credited *payment.Transaction
	err := a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx, err := a.svc.txRepo.GetByProviderTxIDForUpdate(txCtx, vo.ProviderPayme, p.ID)
		if err != nil {
			a.svc.recordUnmatched(txCtx, vo.ProviderPayme, p.ID, "PerformTransaction", rawBody)
			perr = &PaymeError{Code: paymeErrTxNotFound, Message: "transaction not found"}
			return nil
		}
		switch {
		case tx.Status().IsSuccess():
			// duplicate callback, reply as the first one did
		case tx.Status() == vo.TransactionStatusFailed:
			perr = &PaymeError{Code: paymeErrInternal, Message: "transaction cancelled"}
			return nil
		default:
			if err := a.svc.settleDeposit(txCtx, tx); err != nil {
				return err
			}
			credited = tx
		}
		result = map[string]interface{}{
			"perform_time": unixMilli(tx.PerformedAt()),
			"transaction":  tx.SID(),
			"state":        paymeStatePerformed,
		}
		return nil
	})
	if err != nil {
		a.logger.Errorw("PerformTransaction failed", "error", err, "provider_tx_id", p.ID)
		return nil, &PaymeError{Code: paymeErrInternal, Message: "internal error"}
	}
	if credited != nil {
		a.logger.Infow("deposit settled via gateway",
			"tx_sid", credited.SID(), "provider", vo.ProviderPayme, "amount", credited.Amount())
		a.svc.notifyCredited(ctx, credited)
	}
	return result, perr
}

// cancel fails a transaction that has not settled. Settled transactions are
// refused with the cannot-cancel code; a repeated cancel echoes the original
// cancel time.
func (a *PaymeAdapter) cancel(ctx context.Context, raw json.RawMessage) (interface{}, *PaymeError) {
	var p paymeCancelParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	var result interface{}
	var perr *PaymeError
	err := a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx, err := a.svc.txRepo.GetByProviderTxIDForUpdate(txCtx, vo.ProviderPayme, p.ID)
		if err != nil {
			perr = &PaymeError{Code: paymeErrTxNotFound, Message: "transaction not found"}
			return nil
		}
		if tx.Status() != vo.TransactionStatusFailed {
			reason := p.Reason
			if err := a.svc.failDeposit(txCtx, tx, "cancelled by gateway", &reason); err != nil {
				if errors.Is(err, payment.ErrTransactionCompleted) {
					perr = &PaymeError{Code: paymeErrCannotCancel, Message: "transaction already completed"}
					return nil
				}
				return err
			}
		}
		result = map[string]interface{}{
			"cancel_time": unixMilli(tx.CancelledAt()),
			"transaction": tx.SID(),
			"state":       paymeStateCancelled,
		}
		return nil
	})
	if err != nil {
		a.logger.Errorw("CancelTransaction failed", "error", err, "provider_tx_id", p.ID)
		return nil, &PaymeError{Code: paymeErrInternal, Message: "internal error"}
	}
	return result, perr
}

// check reports the transaction's current state and timeline.
func (a *PaymeAdapter) check(ctx context.Context, raw json.RawMessage) (interface{}, *PaymeError) {
	var p paymeTxParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	tx, err := a.svc.txRepo.GetByProviderTxID(ctx, vo.ProviderPayme, p.ID)
	if err != nil {
		return nil, &PaymeError{Code: paymeErrTxNotFound, Message: "transaction not found"}
	}
	return map[string]interface{}{
		"create_time":  unixMilli(tx.ProviderBoundAt()),
		"perform_time": unixMilli(tx.PerformedAt()),
		"cancel_time":  unixMilli(tx.CancelledAt()),
		"transaction":  tx.SID(),
		"state":        paymeState(tx),
		"reason":       tx.CancelReason(),
	}, nil
}

// statement lists the gateway's transactions created inside [from, to].
func (a *PaymeAdapter) statement(ctx context.Context, raw json.RawMessage) (interface{}, *PaymeError) {
	var p paymeStatementParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &PaymeError{Code: paymeErrInvalidRequest, Message: "invalid params"}
	}

	from := time.UnixMilli(p.From).UTC()
	to := time.UnixMilli(p.To).UTC()
	txs, err := a.svc.txRepo.ListByTimeRange(ctx, vo.ProviderPayme, from, to)
	if err != nil {
		a.logger.Errorw("GetStatement failed", "error", err)
		return nil, &PaymeError{Code: paymeErrInternal, Message: "internal error"}
	}

	entries := make([]paymeStatementTx, 0, len(txs))
	for _, tx := range txs {
		providerTxID := ""
		if tx.ProviderTxID() != nil {
			providerTxID = *tx.ProviderTxID()
		}
		entries = append(entries, paymeStatementTx{
			ID:          providerTxID,
			Time:        unixMilli(tx.ProviderBoundAt()),
			Amount:      a.conv.USDToTiyin(tx.Amount()),
			Account:     paymeAccount{OrderID: tx.SID()},
			CreateTime:  unixMilli(tx.ProviderBoundAt()),
			PerformTime: unixMilli(tx.PerformedAt()),
			CancelTime:  unixMilli(tx.CancelledAt()),
			Transaction: tx.SID(),
			State:       paymeState(tx),
			Reason:      tx.CancelReason(),
		})
	}
	return map[string]interface{}{"transactions": entries}, nil
}

func paymeState(tx *payment.Transaction) int {
	switch tx.Status() {
	case vo.TransactionStatusSuccess:
		return paymeStatePerformed
	case vo.TransactionStatusFailed:
		return paymeStateCancelled
	default:
		return paymeStatePending
	}
}

func paymeFail(id json.RawMessage, code int, message string) PaymeResponse {
	return PaymeResponse{ID: id, Error: &PaymeError{Code: code, Message: message}}
}

func unixMilli(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func constantTimeEqual(a, b string) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
