package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// pendingCreditedKey marks a transaction whose net amount already sits in the
// wallet's pending bucket, so a later confirm or cancel moves the right sum.
const pendingCreditedKey = "pending_credited"

// expireBatchSize caps how many stale transactions one sweep touches.
const expireBatchSize = 100

// Service owns deposit transactions and the exactly-once credit contract the
// gateway adapters rely on. Adapters lock the transaction row, drive its
// state machine, and let settleDeposit pair the status flip with the wallet
// credit in the same database transaction.
type Service struct {
	txRepo     payment.Repository
	reconRepo  payment.ReconciliationRepository
	userRepo   user.Repository
	walletSvc  *appWallet.Service
	settings   setting.Provider
	txMgr      *db.TransactionManager
	dispatcher *appNotification.Dispatcher
	logger     logger.Interface
}

func NewService(
	txRepo payment.Repository,
	reconRepo payment.ReconciliationRepository,
	userRepo user.Repository,
	walletSvc *appWallet.Service,
	settings setting.Provider,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *Service {
	return &Service{
		txRepo:     txRepo,
		reconRepo:  reconRepo,
		userRepo:   userRepo,
		walletSvc:  walletSvc,
		settings:   settings,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		logger:     logger.With("component", "payment_service"),
	}
}

// InitiateDeposit opens a PENDING deposit the user will pay through an
// external gateway. The returned transaction's SID is the order id the
// gateway echoes back in its callbacks.
func (s *Service) InitiateDeposit(ctx context.Context, userID uint, provider vo.Provider, amount decimal.Decimal) (*payment.Transaction, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := payment.NewDepositTransaction(userID, provider, amount)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create deposit transaction: %w", err)
	}

	s.logger.Infow("deposit initiated",
		"tx_sid", tx.SID(), "user_id", userID, "provider", provider, "amount", amount)
	return tx, nil
}

// InitiateCryptoDeposit opens a PENDING crypto deposit with the coin and
// network the IPN will later confirm.
func (s *Service) InitiateCryptoDeposit(ctx context.Context, userID uint, coin, network string, amount decimal.Decimal) (*payment.Transaction, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := payment.NewCryptoDeposit(userID, coin, network, amount)
	if err != nil {
		return nil, err
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create crypto deposit: %w", err)
	}

	s.logger.Infow("crypto deposit initiated",
		"tx_sid", tx.SID(), "user_id", userID, "coin", coin, "network", network, "amount", amount)
	return tx, nil
}

// GetTransaction returns one transaction. Non-admins only see their own; a
// foreign SID reads as not found so ownership cannot be probed.
func (s *Service) GetTransaction(ctx context.Context, sid string, requesterID uint, isAdmin bool) (*payment.Transaction, error) {
	tx, err := s.txRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !isAdmin && tx.UserID() != requesterID {
		return nil, fmt.Errorf("%w: %s", payment.ErrTransactionNotFound, sid)
	}
	return tx, nil
}

// ListTransactions returns transaction history matching the filter.
func (s *Service) ListTransactions(ctx context.Context, filter payment.ListFilter) ([]*payment.Transaction, int64, error) {
	return s.txRepo.List(ctx, filter)
}

// ListUnreconciled returns stored gateway callbacks still awaiting manual
// review.
func (s *Service) ListUnreconciled(ctx context.Context, limit int) ([]*payment.ReconciliationEntry, error) {
	return s.reconRepo.ListUnresolved(ctx, limit)
}

// ResolveReconciliation closes one stored callback after support handled it.
func (s *Service) ResolveReconciliation(ctx context.Context, id uint, note string) error {
	return s.reconRepo.MarkResolved(ctx, id, note)
}

// settleDeposit flips a PENDING leg to SUCCESS and credits the wallet. The
// caller must hold the transaction's row lock inside a database transaction;
// callers check the status first so the credit is issued exactly once.
func (s *Service) settleDeposit(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.MarkSuccess(); err != nil {
		return err
	}

	ref := appWallet.TransactionRef(tx.SID())
	desc := fmt.Sprintf("Deposit via %s", tx.Provider())
	// A pre-credited pending amount is unwound first, so every settled
	// deposit owns exactly one DEPOSIT-typed ledger credit under its SID.
	if pendingCredited(tx) {
		if _, err := s.walletSvc.CancelPending(ctx, tx.UserID(), tx.NetAmount(), ref, "Deposit confirmed"); err != nil {
			return err
		}
		tx.SetMetadata(pendingCreditedKey, false)
	}
	if _, err := s.walletSvc.Credit(ctx, tx.UserID(), tx.NetAmount(), ref, desc); err != nil {
		return err
	}
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// failDeposit marks a PENDING leg FAILED, unwinding the pending bucket when
// the amount was pre-credited. Same locking contract as settleDeposit.
func (s *Service) failDeposit(ctx context.Context, tx *payment.Transaction, reason string, cancelReason *int) error {
	if err := tx.MarkFailed(reason, cancelReason); err != nil {
		return err
	}
	if pendingCredited(tx) {
		ref := appWallet.TransactionRef(tx.SID())
		if _, err := s.walletSvc.CancelPending(ctx, tx.UserID(), tx.NetAmount(), ref, "Deposit "+reason); err != nil {
			return err
		}
		tx.SetMetadata(pendingCreditedKey, false)
	}
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// recordUnmatched stores the raw payload of a callback that matched no local
// transaction, so support can settle it by hand, and raises an admin alert.
func (s *Service) recordUnmatched(ctx context.Context, provider vo.Provider, providerTxID, method, rawPayload string) {
	entry := payment.NewReconciliationEntry(provider, providerTxID, method, rawPayload)
	if err := s.reconRepo.Create(ctx, entry); err != nil {
		s.logger.Errorw("failed to store unmatched callback",
			"error", err, "provider", provider, "provider_tx_id", providerTxID, "method", method)
		return
	}
	s.logger.Warnw("unmatched gateway callback stored for reconciliation",
		"provider", provider, "provider_tx_id", providerTxID, "method", method)
	if s.dispatcher != nil {
		s.dispatcher.ReconciliationAlert(provider.String(), providerTxID, "no matching transaction")
	}
}

// notifyCredited tells the user their deposit landed. Called after the
// settling database transaction committed.
func (s *Service) notifyCredited(ctx context.Context, tx *payment.Transaction) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DepositCredited(s.recipient(ctx, tx.UserID()), utils.FormatUSD(tx.NetAmount()))
}

// ExpireStalePending fails PENDING deposits older than the configured TTL,
// returning pre-credited pending amounts to the gateway. Runs as a scheduled
// batch job; returns how many legs were expired.
func (s *Service) ExpireStalePending(ctx context.Context) (int, error) {
	ttl := time.Duration(s.settings.PendingTxTTLMinutes(ctx)) * time.Minute
	cutoff := biztime.NowUTC().Add(-ttl)

	stale, err := s.txRepo.ListStalePending(ctx, cutoff, expireBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale transactions: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	expired := 0
	for _, candidate := range stale {
		sid := candidate.SID()
		err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			tx, err := s.txRepo.GetBySIDForUpdate(txCtx, sid)
			if err != nil {
				return err
			}
			// a callback may have settled it between the list and the lock
			if tx.Status().IsFinal() {
				return nil
			}
			return s.failDeposit(txCtx, tx, "expired", nil)
		})
		if err != nil {
			s.logger.Errorw("failed to expire stale transaction", "error", err, "tx_sid", sid)
			continue
		}
		expired++
		s.logger.Infow("stale transaction expired", "tx_sid", sid)
	}
	return expired, nil
}

func (s *Service) recipient(ctx context.Context, userID uint) appNotification.Recipient {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return appNotification.Recipient{}
	}
	return appNotification.Recipient{TelegramID: u.TelegramID(), Locale: u.Locale()}
}

// pendingCredited reports whether the transaction's net amount was already
// added to the wallet's pending bucket by an earlier callback.
func pendingCredited(tx *payment.Transaction) bool {
	v, ok := tx.Metadata()[pendingCreditedKey].(bool)
	return ok && v
}
