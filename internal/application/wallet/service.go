// Package wallet implements the money movement service. Every mutation runs
// in one database transaction that locks the owner's wallet row, applies the
// aggregate operation and appends exactly one ledger entry stamped with the
// post-entry running total.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// BalanceEpsilon is the tolerance for ledger-against-balance verification.
var BalanceEpsilon = decimal.NewFromFloat(0.001)

// Reference links a money movement to the record that caused it.
type Reference struct {
	Type string
	ID   string
}

// NoRef marks a movement with no originating record.
var NoRef = Reference{}

// AdRef links a movement to an ad.
func AdRef(adSID string) Reference {
	return Reference{Type: wallet.RefTypeAd, ID: adSID}
}

// ImpressionRef links an earnings credit to the delivered impression.
func ImpressionRef(impressionSID string) Reference {
	return Reference{Type: wallet.RefTypeImpression, ID: impressionSID}
}

// TransactionRef links a movement to a provider transaction.
func TransactionRef(txSID string) Reference {
	return Reference{Type: wallet.RefTypeTransaction, ID: txSID}
}

// WithdrawalRef links a movement to a withdrawal request.
func WithdrawalRef(wdSID string) Reference {
	return Reference{Type: wallet.RefTypeWithdrawal, ID: wdSID}
}

// AdminRef links a movement to the admin who ordered it.
func AdminRef(adminSID string) Reference {
	return Reference{Type: wallet.RefTypeAdmin, ID: adminSID}
}

// Service is the single entry point for changing user balances.
type Service struct {
	walletRepo wallet.Repository
	ledgerRepo wallet.LedgerRepository
	txMgr      *db.TransactionManager
	logger     logger.Interface
}

func NewService(
	walletRepo wallet.Repository,
	ledgerRepo wallet.LedgerRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *Service {
	return &Service{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// GetWallet returns the user's wallet, creating a zero-balance one on first
// touch.
func (s *Service) GetWallet(ctx context.Context, userID uint) (*wallet.Wallet, error) {
	w, err := s.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	w, err = wallet.NewWallet(userID)
	if err != nil {
		return nil, err
	}
	if err := s.walletRepo.Create(ctx, w); err != nil {
		// Lost a create race; the row exists now.
		if existing, getErr := s.walletRepo.GetByUserID(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	s.logger.Infow("wallet created", "user_id", userID, "wallet_sid", w.SID())
	return w, nil
}

// Credit settles an external deposit into the available bucket.
func (s *Service) Credit(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeDeposit, amount, ref, description, func(w *wallet.Wallet) error {
		return w.Credit(amount)
	})
}

// CreditEarnings adds bot owner revenue to the available bucket.
func (s *Service) CreditEarnings(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeEarnings, amount, ref, description, func(w *wallet.Wallet) error {
		return w.CreditEarnings(amount)
	})
}

// Debit removes available money as direct platform spend.
func (s *Service) Debit(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeSpend, amount, ref, description, func(w *wallet.Wallet) error {
		return w.Debit(amount)
	})
}

// ReserveForAd escrows ad budget out of the available bucket.
func (s *Service) ReserveForAd(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeAdReserve, amount, ref, description, func(w *wallet.Wallet) error {
		return w.Reserve(amount)
	})
}

// ConfirmAdReserve settles escrowed ad budget as spend once the ad is
// approved.
func (s *Service) ConfirmAdReserve(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeAdConfirm, amount, ref, description, func(w *wallet.Wallet) error {
		return w.ConfirmSpent(amount)
	})
}

// RefundAdReserve releases escrowed ad budget back to available when an ad is
// rejected or cancelled before approval.
func (s *Service) RefundAdReserve(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeAdRefund, amount, ref, description, func(w *wallet.Wallet) error {
		return w.ReleaseReserved(amount)
	})
}

// ReturnBudget credits back unspent ad budget after the spend was already
// confirmed, when a running ad finishes under budget.
func (s *Service) ReturnBudget(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeAdReturn, amount, ref, description, func(w *wallet.Wallet) error {
		return w.CreditRefund(amount)
	})
}

// Reserve escrows money for a withdrawal request.
func (s *Service) Reserve(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeReserve, amount, ref, description, func(w *wallet.Wallet) error {
		return w.Reserve(amount)
	})
}

// ReleaseReserved returns withdrawal escrow to available when the request is
// rejected or cancelled.
func (s *Service) ReleaseReserved(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeReserveRelease, amount, ref, description, func(w *wallet.Wallet) error {
		return w.ReleaseReserved(amount)
	})
}

// ConfirmReserved settles withdrawal escrow as an executed payout.
func (s *Service) ConfirmReserved(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeWithdraw, amount, ref, description, func(w *wallet.Wallet) error {
		return w.ConfirmWithdrawn(amount)
	})
}

// AddPending records a provider deposit that has not settled yet.
func (s *Service) AddPending(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypePendingAdd, amount, ref, description, func(w *wallet.Wallet) error {
		return w.AddPending(amount)
	})
}

// ConfirmPending settles a pending deposit into the available bucket.
func (s *Service) ConfirmPending(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypePendingConfirm, amount, ref, description, func(w *wallet.Wallet) error {
		return w.ConfirmPending(amount)
	})
}

// CancelPending drops a pending deposit that the provider failed or reversed.
func (s *Service) CancelPending(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypePendingCancel, amount, ref, description, func(w *wallet.Wallet) error {
		return w.CancelPending(amount)
	})
}

// Adjust applies a signed manual correction ordered by an admin.
func (s *Service) Adjust(ctx context.Context, userID uint, amount decimal.Decimal, ref Reference, description string) (*wallet.Wallet, error) {
	return s.apply(ctx, userID, vo.EntryTypeAdjustment, amount, ref, description, func(w *wallet.Wallet) error {
		return w.Adjust(amount)
	})
}

// VerifyResult reports a ledger-against-balance reconciliation.
type VerifyResult struct {
	WalletTotal decimal.Decimal
	LedgerSum   decimal.Decimal
	Difference  decimal.Decimal
	Clean       bool
}

// VerifyBalance recomputes the wallet total from the ledger and compares it
// with the stored buckets.
func (s *Service) VerifyBalance(ctx context.Context, userID uint) (*VerifyResult, error) {
	w, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := s.ledgerRepo.SumAmountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}

	diff := w.Total().Sub(sum).Abs()
	result := &VerifyResult{
		WalletTotal: w.Total(),
		LedgerSum:   sum,
		Difference:  diff,
		Clean:       diff.LessThanOrEqual(BalanceEpsilon),
	}
	if !result.Clean {
		s.logger.Errorw("wallet balance does not match ledger",
			"user_id", userID,
			"wallet_total", result.WalletTotal,
			"ledger_sum", result.LedgerSum,
			"difference", result.Difference)
	}
	return result, nil
}

// ListLedger returns a page of the user's ledger entries, newest first.
func (s *Service) ListLedger(ctx context.Context, userID uint, filter wallet.LedgerFilter) ([]*wallet.LedgerEntry, int64, error) {
	return s.ledgerRepo.ListByUserID(ctx, userID, filter)
}

// HasEntry reports whether a ledger entry of the type already exists for the
// reference. Payment adapters use it to keep provider callbacks exactly-once.
func (s *Service) HasEntry(ctx context.Context, entryType vo.EntryType, ref Reference) (bool, error) {
	return s.ledgerRepo.ExistsByTypeAndRef(ctx, entryType.String(), ref.Type, ref.ID)
}

// apply runs one money movement: lock wallet row, mutate aggregate, append
// the ledger entry, persist. Joins the caller's transaction when one is
// already open.
func (s *Service) apply(
	ctx context.Context,
	userID uint,
	entryType vo.EntryType,
	amount decimal.Decimal,
	ref Reference,
	description string,
	op func(w *wallet.Wallet) error,
) (*wallet.Wallet, error) {
	var result *wallet.Wallet
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		w, err := s.lockWallet(txCtx, userID)
		if err != nil {
			return err
		}

		if err := op(w); err != nil {
			return err
		}

		entry, err := wallet.NewLedgerEntry(userID, entryType, entryType.LedgerAmount(amount), w.Total(), description)
		if err != nil {
			return err
		}
		if ref.Type != "" {
			entry.SetReference(ref.ID, ref.Type)
		}

		if err := s.ledgerRepo.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
		if err := s.walletRepo.Update(txCtx, w); err != nil {
			return fmt.Errorf("failed to update wallet: %w", err)
		}

		result = w
		return nil
	})
	if err != nil {
		s.logger.Errorw("wallet operation failed",
			"error", err,
			"user_id", userID,
			"entry_type", entryType,
			"amount", amount,
			"ref_type", ref.Type,
			"ref_id", ref.ID)
		return nil, err
	}

	s.logger.Infow("wallet operation applied",
		"user_id", userID,
		"entry_type", entryType,
		"amount", amount,
		"balance", result.Total(),
		"ref_type", ref.Type,
		"ref_id", ref.ID)
	return result, nil
}

// lockWallet fetches the wallet under a row lock, creating it first when the
// user has never held money. Must run inside a transaction.
func (s *Service) lockWallet(ctx context.Context, userID uint) (*wallet.Wallet, error) {
	w, err := s.walletRepo.GetByUserIDForUpdate(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	nw, err := wallet.NewWallet(userID)
	if err != nil {
		return nil, err
	}
	if err := s.walletRepo.Create(ctx, nw); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return s.walletRepo.GetByUserIDForUpdate(ctx, userID)
}
