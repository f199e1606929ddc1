// Package user covers account self-service (profile, locale, dashboard) and
// the admin surface over accounts: listing, ban/unban, role grants and manual
// balance corrections. Accounts are created by the login flow, never here.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// Dashboard is the landing-page summary for one account.
type Dashboard struct {
	Available   decimal.Decimal
	Reserved    decimal.Decimal
	Pending     decimal.Decimal
	TotalEarned decimal.Decimal
	TotalSpent  decimal.Decimal
	AdCount     int64
	BotCount    int
}

// Service owns account reads and admin account management.
type Service struct {
	userRepo  user.Repository
	adRepo    ad.Repository
	botRepo   bot.Repository
	txRepo    payment.Repository
	auditRepo moderation.AuditLogRepository
	walletSvc *appWallet.Service
	txMgr     *db.TransactionManager
	logger    logger.Interface
}

func NewService(
	userRepo user.Repository,
	adRepo ad.Repository,
	botRepo bot.Repository,
	txRepo payment.Repository,
	auditRepo moderation.AuditLogRepository,
	walletSvc *appWallet.Service,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:  userRepo,
		adRepo:    adRepo,
		botRepo:   botRepo,
		txRepo:    txRepo,
		auditRepo: auditRepo,
		walletSvc: walletSvc,
		txMgr:     txMgr,
		logger:    logger.With("component", "user_service"),
	}
}

// Profile returns the account as the owner sees it.
func (s *Service) Profile(ctx context.Context, userID uint) (*user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// SetLocale updates the account's interface language.
func (s *Service) SetLocale(ctx context.Context, userID uint, locale string) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.SetLocale(locale)
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetDashboard summarizes the wallet and how much inventory the account runs.
func (s *Service) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	w, err := s.walletSvc.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	_, adCount, err := s.adRepo.List(ctx, ad.ListFilter{AdvertiserID: userID, PageSize: 1})
	if err != nil {
		return nil, err
	}
	bots, err := s.botRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Available:   w.Available(),
		Reserved:    w.Reserved(),
		Pending:     w.Pending(),
		TotalEarned: w.TotalEarned(),
		TotalSpent:  w.TotalSpent(),
		AdCount:     adCount,
		BotCount:    len(bots),
	}, nil
}

// Admin surface

// List returns accounts matching the filter.
func (s *Service) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// GetBySID returns one account for the admin detail view.
func (s *Service) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return s.userRepo.GetBySID(ctx, sid)
}

// Ban blocks the account from logging in and from every authenticated call.
func (s *Service) Ban(ctx context.Context, adminID uint, sid, reason string) (*user.User, error) {
	u, err := s.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := u.Ban(reason); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, moderation.ActionBan, sid, map[string]interface{}{"reason": reason})
	s.logger.Infow("user banned", "user_sid", sid, "admin_id", adminID, "reason", reason)
	return u, nil
}

// Unban lifts a ban.
func (s *Service) Unban(ctx context.Context, adminID uint, sid string) (*user.User, error) {
	u, err := s.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := u.Unban(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, moderation.ActionUnban, sid, nil)
	s.logger.Infow("user unbanned", "user_sid", sid, "admin_id", adminID)
	return u, nil
}

// GrantRole adds a role to the account's set.
func (s *Service) GrantRole(ctx context.Context, adminID uint, sid, role string) (*user.User, error) {
	return s.changeRoles(ctx, adminID, sid, role, "grant_role", func(u *user.User, r authorization.UserRole) error {
		return u.GrantRole(r)
	})
}

// RevokeRole removes a role from the account's set.
func (s *Service) RevokeRole(ctx context.Context, adminID uint, sid, role string) (*user.User, error) {
	return s.changeRoles(ctx, adminID, sid, role, "revoke_role", func(u *user.User, r authorization.UserRole) error {
		return u.RevokeRole(r)
	})
}

func (s *Service) changeRoles(ctx context.Context, adminID uint, sid, role, action string, mutate func(*user.User, authorization.UserRole) error) (*user.User, error) {
	r := authorization.UserRole(strings.ToUpper(strings.TrimSpace(role)))
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	u, err := s.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := mutate(u, r); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, action, sid, map[string]interface{}{"role": r.String()})
	s.logger.Infow("user roles changed", "user_sid", sid, "admin_id", adminID, "action", action, "role", r)
	return u, nil
}

// AdjustBalance applies a manual wallet correction. The movement, its
// ADJUSTMENT transaction record and the ledger entry commit together.
func (s *Service) AdjustBalance(ctx context.Context, adminID uint, sid string, amount decimal.Decimal, note string) (*user.User, error) {
	if amount.IsZero() {
		return nil, fmt.Errorf("adjustment amount cannot be zero")
	}
	if strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("adjustment note is required")
	}

	u, err := s.userRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	err = s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.walletSvc.Adjust(txCtx, u.ID(), amount, appWallet.AdminRef(admin.SID()), note); err != nil {
			return err
		}
		leg, err := payment.NewAdjustmentTransaction(u.ID(), amount, note)
		if err != nil {
			return err
		}
		if err := leg.MarkSuccess(); err != nil {
			return err
		}
		leg.SetMetadata("admin_sid", admin.SID())
		return s.txRepo.Create(txCtx, leg)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, moderation.ActionAdjustBalance, sid, map[string]interface{}{
		"amount": amount.String(),
		"note":   note,
	})
	s.logger.Infow("balance adjusted",
		"user_sid", sid, "admin_id", adminID, "amount", amount, "note", note)
	return u, nil
}

func (s *Service) audit(ctx context.Context, adminID uint, action, entityID string, metadata map[string]interface{}) {
	log, err := moderation.NewAuditLog(adminID, action, "USER", entityID, metadata)
	if err != nil {
		s.logger.Errorw("failed to build audit record", "error", err, "entity_id", entityID)
		return
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Errorw("failed to write audit record", "error", err, "entity_id", entityID)
	}
}
