package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Typed IPN outcomes the webhook handler maps to HTTP statuses.
var (
	ErrIPNSignature  = errors.New("invalid IPN signature")
	ErrIPNUnmatched  = errors.New("IPN matched no transaction")
	ErrIPNAmount     = errors.New("IPN amount does not match transaction")
	ErrIPNBadPayload = errors.New("malformed IPN payload")
)

// CryptopayIPN is one instant payment notification. The signature covers the
// raw request body, so parsing happens only after verification.
type CryptopayIPN struct {
	UUID     string `json:"uuid"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Network  string `json:"network"`
	TxHash   string `json:"txid"`
}

// CryptopayAdapter settles crypto deposits in two phases: an on-chain
// detection moves the amount into the wallet's pending bucket, the
// confirmation makes it spendable. Signature is HMAC-SHA512 over the raw
// body.
type CryptopayAdapter struct {
	svc       *Service
	ipnSecret string
	logger    logger.Interface
}

func NewCryptopayAdapter(svc *Service, ipnSecret string, logger logger.Interface) *CryptopayAdapter {
	return &CryptopayAdapter{
		svc:       svc,
		ipnSecret: ipnSecret,
		logger:    logger.With("component", "cryptopay_adapter"),
	}
}

// HandleIPN verifies and applies one notification. Duplicate notifications
// for a settled transaction are accepted without a second wallet movement.
func (a *CryptopayAdapter) HandleIPN(ctx context.Context, rawBody []byte, signature string) error {
	if !a.validSignature(rawBody, signature) {
		return ErrIPNSignature
	}

	var ipn CryptopayIPN
	if err := json.Unmarshal(rawBody, &ipn); err != nil {
		return fmt.Errorf("%w: %v", ErrIPNBadPayload, err)
	}
	if ipn.OrderID == "" || ipn.UUID == "" {
		return ErrIPNBadPayload
	}
	amount, err := decimal.NewFromString(ipn.Amount)
	if err != nil {
		return fmt.Errorf("%w: bad amount %q", ErrIPNBadPayload, ipn.Amount)
	}

	var credited *payment.Transaction
	var outcome error
	err = a.svc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx, err := a.svc.txRepo.GetBySIDForUpdate(txCtx, ipn.OrderID)
		if err != nil {
			a.svc.recordUnmatched(txCtx, vo.ProviderCryptopay, ipn.UUID, "ipn:"+ipn.Status, string(rawBody))
			outcome = ErrIPNUnmatched
			return nil
		}
		if !tx.AmountMatches(amount, callbackTolerance) {
			outcome = fmt.Errorf("%w: got %s want %s", ErrIPNAmount, amount, tx.Amount())
			return nil
		}
		if tx.Status().IsFinal() {
			// settled either way; repeats are acknowledged as-is
			return nil
		}
		if err := tx.BindProvider(ipn.UUID); err != nil {
			outcome = fmt.Errorf("%w: %v", ErrIPNBadPayload, err)
			return nil
		}
		if ipn.TxHash != "" {
			tx.SetMetadata("txid", ipn.TxHash)
		}

		switch ipn.Status {
		case "pending", "paid":
			return a.holdPending(txCtx, tx)
		case "confirmed", "completed":
			if err := a.svc.settleDeposit(txCtx, tx); err != nil {
				return err
			}
			credited = tx
			return nil
		case "cancelled", "failed", "expired":
			return a.svc.failDeposit(txCtx, tx, "rejected by gateway: "+ipn.Status, nil)
		default:
			a.logger.Warnw("ignoring IPN with unknown status", "status", ipn.Status, "order_id", ipn.OrderID)
			return a.svc.txRepo.Update(txCtx, tx)
		}
	})
	if err != nil {
		a.logger.Errorw("IPN processing failed", "error", err, "order_id", ipn.OrderID, "uuid", ipn.UUID)
		return err
	}
	if outcome != nil {
		return outcome
	}
	if credited != nil {
		a.logger.Infow("deposit settled via gateway",
			"tx_sid", credited.SID(), "provider", vo.ProviderCryptopay, "amount", credited.Amount())
		a.svc.notifyCredited(ctx, credited)
	}
	return nil
}

// holdPending moves the net amount into the wallet's pending bucket once;
// repeated pending notifications only refresh metadata.
func (a *CryptopayAdapter) holdPending(ctx context.Context, tx *payment.Transaction) error {
	if !pendingCredited(tx) {
		ref := appWallet.TransactionRef(tx.SID())
		if _, err := a.svc.walletSvc.AddPending(ctx, tx.UserID(), tx.NetAmount(), ref, "Crypto deposit awaiting confirmations"); err != nil {
			return err
		}
		tx.SetMetadata(pendingCreditedKey, true)
	}
	return a.svc.txRepo.Update(ctx, tx)
}

func (a *CryptopayAdapter) validSignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(a.ipnSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return constantTimeEqual(expected, signature)
}
