// Package withdrawal runs the payout workflow: owners request against earned
// balance, the wallet holds amount+fee in reserve, and an admin decision
// either settles the hold as a withdrawal or returns it.
package withdrawal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/utils"
)

// Service owns the payout request lifecycle. Admin decisions write an audit
// row and pair the status change with the wallet movement in one transaction.
type Service struct {
	wdRepo     withdrawal.Repository
	txRepo     payment.Repository
	userRepo   user.Repository
	auditRepo  moderation.AuditLogRepository
	walletSvc  *appWallet.Service
	settings   setting.Provider
	txMgr      *db.TransactionManager
	dispatcher *appNotification.Dispatcher
	logger     logger.Interface
}

func NewService(
	wdRepo withdrawal.Repository,
	txRepo payment.Repository,
	userRepo user.Repository,
	auditRepo moderation.AuditLogRepository,
	walletSvc *appWallet.Service,
	settings setting.Provider,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *Service {
	return &Service{
		wdRepo:     wdRepo,
		txRepo:     txRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		walletSvc:  walletSvc,
		settings:   settings,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		logger:     logger.With("component", "withdrawal_service"),
	}
}

// Create validates the request against the platform minimum and the user's
// daily cap, then stores it REQUESTED with amount+fee reserved in the wallet.
func (s *Service) Create(ctx context.Context, userID uint, coin string, network vo.Network, address string, amount decimal.Decimal) (*withdrawal.WithdrawRequest, error) {
	minAmount := s.settings.MinWithdrawUSD(ctx)
	if amount.LessThan(minAmount) {
		return nil, fmt.Errorf("%w: minimum is %s", withdrawal.ErrBelowMinimum, minAmount)
	}

	dailyCap := s.settings.MaxDailyWithdrawUSD(ctx)
	since := biztime.StartOfDayUTC(biztime.NowUTC())
	requestedToday, err := s.wdRepo.SumAmountByUserSince(ctx, userID, since, vo.DailyCapStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to sum daily withdrawals: %w", err)
	}
	if requestedToday.Add(amount).GreaterThan(dailyCap) {
		return nil, fmt.Errorf("%w: %s of %s already requested today",
			withdrawal.ErrDailyCapExceeded, requestedToday, dailyCap)
	}

	fee := s.settings.WithdrawFeeUSD(ctx)
	w, err := withdrawal.NewWithdrawRequest(userID, coin, network, address, amount, fee)
	if err != nil {
		return nil, err
	}

	err = s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ref := appWallet.WithdrawalRef(w.SID())
		if _, err := s.walletSvc.Reserve(txCtx, userID, w.ReservedAmount(), ref, "Withdrawal hold"); err != nil {
			return err
		}
		return s.wdRepo.Create(txCtx, w)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("withdrawal requested",
		"wd_sid", w.SID(), "user_id", userID, "amount", amount, "fee", fee, "network", network)
	s.notifyRequested(ctx, w)
	return w, nil
}

// Get returns one request. Non-admins only see their own; a foreign SID
// reads as not found so ownership cannot be probed.
func (s *Service) Get(ctx context.Context, sid string, requesterID uint, isAdmin bool) (*withdrawal.WithdrawRequest, error) {
	w, err := s.wdRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !isAdmin && w.UserID() != requesterID {
		return nil, fmt.Errorf("%w: %s", withdrawal.ErrWithdrawalNotFound, sid)
	}
	return w, nil
}

// List returns requests matching the filter.
func (s *Service) List(ctx context.Context, filter withdrawal.ListFilter) ([]*withdrawal.WithdrawRequest, int64, error) {
	return s.wdRepo.List(ctx, filter)
}

// TakeForReview stages a request for manual inspection before the decision.
func (s *Service) TakeForReview(ctx context.Context, adminID uint, sid string) (*withdrawal.WithdrawRequest, error) {
	var w *withdrawal.WithdrawRequest
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		w, err = s.wdRepo.GetBySIDForUpdate(txCtx, sid)
		if err != nil {
			return err
		}
		if err := w.TakeForReview(); err != nil {
			return err
		}
		return s.wdRepo.Update(txCtx, w)
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, adminID, moderation.ActionTakeReview, sid, nil)
	return w, nil
}

// Approve settles the hold as spent, completes the request, and records the
// payout transaction. txHash is the on-chain reference of the transfer.
func (s *Service) Approve(ctx context.Context, adminID uint, sid, txHash string) (*withdrawal.WithdrawRequest, error) {
	var w *withdrawal.WithdrawRequest
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		w, err = s.wdRepo.GetBySIDForUpdate(txCtx, sid)
		if err != nil {
			return err
		}
		if err := w.Approve(adminID); err != nil {
			return err
		}
		if err := w.Complete(txHash); err != nil {
			return err
		}

		ref := appWallet.WithdrawalRef(w.SID())
		if _, err := s.walletSvc.ConfirmReserved(txCtx, w.UserID(), w.ReservedAmount(), ref, "Withdrawal settled"); err != nil {
			return err
		}

		leg, err := payment.NewWithdrawTransaction(w.UserID(), w.Amount(), w.Fee(), w.Coin(), w.Network().String())
		if err != nil {
			return err
		}
		if err := leg.MarkSuccess(); err != nil {
			return err
		}
		if txHash != "" {
			leg.SetMetadata("txid", txHash)
		}
		leg.SetMetadata("withdrawal_sid", w.SID())
		if err := s.txRepo.Create(txCtx, leg); err != nil {
			return err
		}

		return s.wdRepo.Update(txCtx, w)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, moderation.ActionApprove, sid, map[string]interface{}{
		"amount": w.Amount().String(),
		"txid":   txHash,
	})
	s.logger.Infow("withdrawal approved",
		"wd_sid", sid, "admin_id", adminID, "amount", w.Amount(), "txid", txHash)
	if s.dispatcher != nil {
		s.dispatcher.WithdrawCompleted(s.recipient(ctx, w.UserID()), utils.FormatUSD(w.NetAmount()), txHash)
	}
	return w, nil
}

// Reject declines the request and returns the reserved amount to the wallet.
func (s *Service) Reject(ctx context.Context, adminID uint, sid, reason string) (*withdrawal.WithdrawRequest, error) {
	var w *withdrawal.WithdrawRequest
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		w, err = s.wdRepo.GetBySIDForUpdate(txCtx, sid)
		if err != nil {
			return err
		}
		if err := w.Reject(adminID, reason); err != nil {
			return err
		}
		ref := appWallet.WithdrawalRef(w.SID())
		if _, err := s.walletSvc.ReleaseReserved(txCtx, w.UserID(), w.ReservedAmount(), ref, "Withdrawal rejected"); err != nil {
			return err
		}
		return s.wdRepo.Update(txCtx, w)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, moderation.ActionReject, sid, map[string]interface{}{"reason": reason})
	s.logger.Infow("withdrawal rejected", "wd_sid", sid, "admin_id", adminID, "reason", reason)
	if s.dispatcher != nil {
		s.dispatcher.WithdrawRejected(s.recipient(ctx, w.UserID()), utils.FormatUSD(w.Amount()), reason)
	}
	return w, nil
}

// Cancel lets the owner pull back a request review has not started on.
func (s *Service) Cancel(ctx context.Context, userID uint, sid string) (*withdrawal.WithdrawRequest, error) {
	var w *withdrawal.WithdrawRequest
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		w, err = s.wdRepo.GetBySIDForUpdate(txCtx, sid)
		if err != nil {
			return err
		}
		if w.UserID() != userID {
			return fmt.Errorf("%w: %s", withdrawal.ErrWithdrawalNotFound, sid)
		}
		if err := w.Cancel(); err != nil {
			return err
		}
		ref := appWallet.WithdrawalRef(w.SID())
		if _, err := s.walletSvc.ReleaseReserved(txCtx, userID, w.ReservedAmount(), ref, "Withdrawal cancelled"); err != nil {
			return err
		}
		return s.wdRepo.Update(txCtx, w)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("withdrawal cancelled by owner", "wd_sid", sid, "user_id", userID)
	return w, nil
}

func (s *Service) audit(ctx context.Context, adminID uint, action, entityID string, metadata map[string]interface{}) {
	log, err := moderation.NewAuditLog(adminID, action, moderation.KindWithdrawal.String(), entityID, metadata)
	if err != nil {
		s.logger.Errorw("failed to build audit record", "error", err, "entity_id", entityID)
		return
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Errorw("failed to write audit record", "error", err, "entity_id", entityID)
	}
}

// notifyRequested alerts admins that a payout needs review.
func (s *Service) notifyRequested(ctx context.Context, w *withdrawal.WithdrawRequest) {
	if s.dispatcher == nil {
		return
	}
	userSID := ""
	if u, err := s.userRepo.GetByID(ctx, w.UserID()); err == nil {
		userSID = u.SID()
	}
	s.dispatcher.WithdrawalRequested(w.SID(), userSID, utils.FormatUSD(w.Amount()), w.Network().String(), w.Address())
}

func (s *Service) recipient(ctx context.Context, userID uint) appNotification.Recipient {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return appNotification.Recipient{}
	}
	return appNotification.Recipient{TelegramID: u.TelegramID(), Locale: u.Locale()}
}
