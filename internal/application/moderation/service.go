// Package moderation implements the admin review workflow for ads, bots and
// payout requests. Every decision writes an audit row; decisions that move
// money pair the status change with the wallet call in one transaction.
package moderation

import (
	"context"
	"fmt"
	"strings"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Service runs the review queues. The safety checker is optional; nil skips
// the automatic screening pass.
type Service struct {
	adRepo     ad.Repository
	botRepo    bot.Repository
	userRepo   user.Repository
	auditRepo  moderation.AuditLogRepository
	walletSvc  *appWallet.Service
	safety     moderation.SafetyChecker
	txMgr      *db.TransactionManager
	dispatcher *appNotification.Dispatcher
	logger     logger.Interface
}

func NewService(
	adRepo ad.Repository,
	botRepo bot.Repository,
	userRepo user.Repository,
	auditRepo moderation.AuditLogRepository,
	walletSvc *appWallet.Service,
	safety moderation.SafetyChecker,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *Service {
	return &Service{
		adRepo:     adRepo,
		botRepo:    botRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		walletSvc:  walletSvc,
		safety:     safety,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		logger:     logger.With("component", "moderation_service"),
	}
}

// PendingAds returns the ad review queue, oldest first.
func (s *Service) PendingAds(ctx context.Context, limit, offset int) ([]*ad.Ad, int64, error) {
	return s.adRepo.ListPendingReview(ctx, limit, offset)
}

// PendingBots returns the bot review queue, oldest first.
func (s *Service) PendingBots(ctx context.Context, limit int) ([]*bot.Bot, error) {
	return s.botRepo.ListPendingReview(ctx, limit)
}

// ApproveAd settles the escrowed budget as spend and starts the ad, or
// schedules it when the window opens later. A safety hit above the auto-reject
// threshold turns the approval into a rejection.
func (s *Service) ApproveAd(ctx context.Context, moderatorID uint, adSID string) (*ad.Ad, error) {
	a, err := s.adRepo.GetBySID(ctx, adSID)
	if err != nil {
		return nil, err
	}

	if verdict := s.screenAd(ctx, a); verdict != "" {
		s.logger.Warnw("ad auto-rejected by safety check", "ad_sid", adSID, "flags", verdict)
		return s.rejectAd(ctx, moderatorID, a, "content flagged: "+verdict, true)
	}

	err = s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.Approve(moderatorID); err != nil {
			return err
		}
		_, err := s.walletSvc.ConfirmAdReserve(txCtx, a.AdvertiserID(), a.TotalCost(),
			appWallet.AdRef(a.SID()), "Ad approved")
		if err != nil {
			return err
		}
		return s.adRepo.Update(txCtx, a)
	})
	if err != nil {
		s.logger.Errorw("ad approval failed", "error", err, "ad_sid", adSID, "moderator_id", moderatorID)
		return nil, err
	}

	s.audit(ctx, moderatorID, moderation.ActionApprove, moderation.KindAd, a.SID(), map[string]interface{}{
		"landed_status": a.Status().String(),
	})
	if s.dispatcher != nil {
		s.dispatcher.AdApproved(s.recipient(ctx, a.AdvertiserID()), appNotification.AdDisplayTitle(a.Text(), a.SID()))
	}
	s.logger.Infow("ad approved", "ad_sid", a.SID(), "moderator_id", moderatorID, "status", a.Status())
	return a, nil
}

// RejectAd refunds the escrow and closes the ad.
func (s *Service) RejectAd(ctx context.Context, moderatorID uint, adSID, reason string) (*ad.Ad, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("rejection reason is required")
	}
	a, err := s.adRepo.GetBySID(ctx, adSID)
	if err != nil {
		return nil, err
	}
	return s.rejectAd(ctx, moderatorID, a, reason, false)
}

func (s *Service) rejectAd(ctx context.Context, moderatorID uint, a *ad.Ad, reason string, auto bool) (*ad.Ad, error) {
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.Reject(moderatorID, reason); err != nil {
			return err
		}
		_, err := s.walletSvc.RefundAdReserve(txCtx, a.AdvertiserID(), a.TotalCost(),
			appWallet.AdRef(a.SID()), "Ad rejected")
		if err != nil {
			return err
		}
		return s.adRepo.Update(txCtx, a)
	})
	if err != nil {
		s.logger.Errorw("ad rejection failed", "error", err, "ad_sid", a.SID(), "moderator_id", moderatorID)
		return nil, err
	}

	s.audit(ctx, moderatorID, moderation.ActionReject, moderation.KindAd, a.SID(), map[string]interface{}{
		"reason": reason,
		"auto":   auto,
	})
	if s.dispatcher != nil {
		s.dispatcher.AdRejected(s.recipient(ctx, a.AdvertiserID()), appNotification.AdDisplayTitle(a.Text(), a.SID()), reason)
	}
	s.logger.Infow("ad rejected", "ad_sid", a.SID(), "moderator_id", moderatorID, "auto", auto)
	return a, nil
}

// RequestAdEdit sends the ad back to DRAFT with feedback and refunds the
// escrow; the advertiser re-submits and re-reserves after fixing it.
func (s *Service) RequestAdEdit(ctx context.Context, moderatorID uint, adSID, feedback string) (*ad.Ad, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, fmt.Errorf("edit feedback is required")
	}
	a, err := s.adRepo.GetBySID(ctx, adSID)
	if err != nil {
		return nil, err
	}

	err = s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.RequestEdit(moderatorID, feedback); err != nil {
			return err
		}
		_, err := s.walletSvc.RefundAdReserve(txCtx, a.AdvertiserID(), a.TotalCost(),
			appWallet.AdRef(a.SID()), "Edit requested")
		if err != nil {
			return err
		}
		return s.adRepo.Update(txCtx, a)
	})
	if err != nil {
		s.logger.Errorw("ad edit request failed", "error", err, "ad_sid", adSID, "moderator_id", moderatorID)
		return nil, err
	}

	s.audit(ctx, moderatorID, moderation.ActionRequestEdit, moderation.KindAd, a.SID(), map[string]interface{}{
		"feedback": feedback,
	})
	if s.dispatcher != nil {
		s.dispatcher.AdEditRequested(s.recipient(ctx, a.AdvertiserID()), appNotification.AdDisplayTitle(a.Text(), a.SID()), feedback)
	}
	return a, nil
}

// ApproveBot activates a pending bot so it may start requesting ads.
func (s *Service) ApproveBot(ctx context.Context, moderatorID uint, botSID string) (*bot.Bot, error) {
	b, err := s.botRepo.GetBySID(ctx, botSID)
	if err != nil {
		return nil, err
	}
	if err := b.Approve(); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}

	s.audit(ctx, moderatorID, moderation.ActionApprove, moderation.KindBot, b.SID(), nil)
	if s.dispatcher != nil {
		s.dispatcher.BotApproved(s.recipient(ctx, b.OwnerID()), b.Username())
	}
	s.logger.Infow("bot approved", "bot_sid", b.SID(), "moderator_id", moderatorID)
	return b, nil
}

// RejectBot declines a pending bot registration.
func (s *Service) RejectBot(ctx context.Context, moderatorID uint, botSID, reason string) (*bot.Bot, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("rejection reason is required")
	}
	b, err := s.botRepo.GetBySID(ctx, botSID)
	if err != nil {
		return nil, err
	}
	if err := b.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}

	s.audit(ctx, moderatorID, moderation.ActionReject, moderation.KindBot, b.SID(), map[string]interface{}{
		"reason": reason,
	})
	if s.dispatcher != nil {
		s.dispatcher.BotRejected(s.recipient(ctx, b.OwnerID()), b.Username(), reason)
	}
	return b, nil
}

// SuspendBot takes an active bot out of rotation for policy violations.
func (s *Service) SuspendBot(ctx context.Context, moderatorID uint, botSID, reason string) (*bot.Bot, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("suspension reason is required")
	}
	b, err := s.botRepo.GetBySID(ctx, botSID)
	if err != nil {
		return nil, err
	}
	if err := b.Suspend(reason); err != nil {
		return nil, err
	}
	if err := s.botRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update bot: %w", err)
	}

	s.audit(ctx, moderatorID, moderation.ActionSuspend, moderation.KindBot, b.SID(), map[string]interface{}{
		"reason": reason,
	})
	if s.dispatcher != nil {
		s.dispatcher.BotSuspended(s.recipient(ctx, b.OwnerID()), b.Username(), reason)
	}
	s.logger.Infow("bot suspended", "bot_sid", b.SID(), "moderator_id", moderatorID, "reason", reason)
	return b, nil
}

// AuditTrail returns the recorded admin actions for one entity, newest first.
func (s *Service) AuditTrail(ctx context.Context, kind moderation.Kind, entityID string, limit int) ([]*moderation.AuditLog, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown moderation kind %q", kind)
	}
	return s.auditRepo.ListByEntity(ctx, kind.String(), entityID, limit)
}

// screenAd runs the optional safety hook and returns the joined flag list
// when the result forces an auto-reject. Checker failures never block a
// human approval.
func (s *Service) screenAd(ctx context.Context, a *ad.Ad) string {
	if s.safety == nil {
		return ""
	}

	urls := make([]string, 0, len(a.Buttons()))
	for _, b := range a.Buttons() {
		urls = append(urls, b.URL())
	}
	result, err := s.safety.CheckAd(ctx, moderation.AdContent{
		Text:        a.Text(),
		HTMLContent: a.HTMLContent(),
		MediaURL:    a.MediaURL(),
		ButtonURLs:  urls,
	})
	if err != nil {
		s.logger.Warnw("safety check failed", "error", err, "ad_sid", a.SID())
		return ""
	}
	if result.ShouldAutoReject() {
		return strings.Join(result.Flags, ", ")
	}
	return ""
}

func (s *Service) audit(ctx context.Context, moderatorID uint, action string, kind moderation.Kind, entityID string, metadata map[string]interface{}) {
	log, err := moderation.NewAuditLog(moderatorID, action, kind.String(), entityID, metadata)
	if err != nil {
		s.logger.Errorw("failed to build audit record", "error", err, "entity_id", entityID)
		return
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Errorw("failed to write audit record", "error", err, "entity_id", entityID)
	}
}

// recipient resolves where to notify the affected user. A lookup failure
// yields a zero recipient, which the dispatcher treats as a no-op.
func (s *Service) recipient(ctx context.Context, userID uint) appNotification.Recipient {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return appNotification.Recipient{}
	}
	return appNotification.Recipient{TelegramID: u.TelegramID(), Locale: u.Locale()}
}
