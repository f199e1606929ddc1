package moderation

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	advo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	botvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// flaggingChecker always reports the configured verdict.
type flaggingChecker struct {
	result *moderation.SafetyResult
}

func (c flaggingChecker) CheckAd(context.Context, moderation.AdContent) (*moderation.SafetyResult, error) {
	return c.result, nil
}

type modFixture struct {
	svc       *Service
	adRepo    ad.Repository
	botRepo   bot.Repository
	walletSvc *appWallet.Service
	auditRepo moderation.AuditLogRepository
}

func setupModeration(t *testing.T, safety moderation.SafetyChecker) *modFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAdTables(gdb))
	require.NoError(t, migrations.MigrateBotTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigrateUserTables(gdb))
	require.NoError(t, migrations.MigrateSettingTables(gdb))

	log := logger.NewLogger()
	txMgr := db.NewTransactionManager(gdb)
	adRepo := repository.NewAdRepository(gdb)
	botRepo := repository.NewBotRepository(gdb)
	auditRepo := repository.NewAuditLogRepository(gdb)
	walletSvc := appWallet.NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		log,
	)

	svc := NewService(
		adRepo,
		botRepo,
		repository.NewUserRepository(gdb),
		auditRepo,
		walletSvc,
		safety,
		txMgr,
		nil,
		log,
	)
	return &modFixture{svc: svc, adRepo: adRepo, botRepo: botRepo, walletSvc: walletSvc, auditRepo: auditRepo}
}

// submittedAd seeds an ad sitting in the review queue with its budget
// escrowed, the state ApproveAd and RejectAd act on.
func (f *modFixture) submittedAd(t *testing.T, advertiserID uint) *ad.Ad {
	ctx := context.Background()

	a, err := ad.NewAd(ad.NewAdParams{
		AdvertiserID:      advertiserID,
		ContentType:       advo.ContentTypeText,
		Text:              "Learn Go in 30 days",
		Category:          "education",
		TargetImpressions: 1000,
	})
	require.NoError(t, err)
	require.NoError(t, a.SetPricing(
		decimal.NewFromInt(2), decimal.Zero, decimal.NewFromInt(2),
		decimal.NewFromInt(2), decimal.RequireFromString("0.4"), decimal.RequireFromString("1.6")))
	require.NoError(t, a.Submit())
	require.NoError(t, f.adRepo.Create(ctx, a))

	_, err = f.walletSvc.Credit(ctx, advertiserID, decimal.NewFromInt(10), appWallet.NoRef, "deposit")
	require.NoError(t, err)
	_, err = f.walletSvc.ReserveForAd(ctx, advertiserID, a.TotalCost(), appWallet.AdRef(a.SID()), "escrow")
	require.NoError(t, err)
	return a
}

func TestApproveAd_ConfirmsEscrowAndStarts(t *testing.T) {
	f := setupModeration(t, nil)
	ctx := context.Background()

	a := f.submittedAd(t, 1)

	approved, err := f.svc.ApproveAd(ctx, 9, a.SID())
	require.NoError(t, err)
	assert.Equal(t, advo.AdStatusRunning, approved.Status())

	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.True(t, w.Reserved().IsZero())
	assert.Equal(t, "2", w.TotalSpent().String())

	trail, err := f.svc.AuditTrail(ctx, moderation.KindAd, a.SID(), 10)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, moderation.ActionApprove, trail[0].Action())
	assert.Equal(t, uint(9), trail[0].ModeratorID())
}

func TestApproveAd_AutoRejectsFlaggedContent(t *testing.T) {
	f := setupModeration(t, flaggingChecker{result: &moderation.SafetyResult{
		Flagged:    true,
		Confidence: 0.97,
		Flags:      []string{"gambling"},
	}})
	ctx := context.Background()

	a := f.submittedAd(t, 1)

	rejected, err := f.svc.ApproveAd(ctx, 9, a.SID())
	require.NoError(t, err)
	assert.Equal(t, advo.AdStatusRejected, rejected.Status())
	assert.Contains(t, rejected.RejectionReason(), "gambling")

	// Escrow came back.
	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "10", w.Available().String())

	trail, err := f.svc.AuditTrail(ctx, moderation.KindAd, a.SID(), 10)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, moderation.ActionReject, trail[0].Action())
	assert.Equal(t, true, trail[0].Metadata()["auto"])
}

func TestApproveAd_LowConfidenceFlagGoesThrough(t *testing.T) {
	f := setupModeration(t, flaggingChecker{result: &moderation.SafetyResult{
		Flagged:    true,
		Confidence: 0.5,
	}})
	ctx := context.Background()

	a := f.submittedAd(t, 1)
	approved, err := f.svc.ApproveAd(ctx, 9, a.SID())
	require.NoError(t, err)
	assert.Equal(t, advo.AdStatusRunning, approved.Status())
}

func TestRejectAd_RefundsEscrow(t *testing.T) {
	f := setupModeration(t, nil)
	ctx := context.Background()

	a := f.submittedAd(t, 1)

	rejected, err := f.svc.RejectAd(ctx, 9, a.SID(), "misleading claims")
	require.NoError(t, err)
	assert.Equal(t, advo.AdStatusRejected, rejected.Status())
	assert.Equal(t, "misleading claims", rejected.RejectionReason())

	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "10", w.Available().String())
	assert.True(t, w.Reserved().IsZero())

	result, err := f.walletSvc.VerifyBalance(ctx, 1)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestRejectAd_RequiresReason(t *testing.T) {
	f := setupModeration(t, nil)
	_, err := f.svc.RejectAd(context.Background(), 9, "ad_whatever", "  ")
	assert.Error(t, err)
}

func TestRequestAdEdit_BackToDraftWithRefund(t *testing.T) {
	f := setupModeration(t, nil)
	ctx := context.Background()

	a := f.submittedAd(t, 1)

	draft, err := f.svc.RequestAdEdit(ctx, 9, a.SID(), "tone down the headline")
	require.NoError(t, err)
	assert.Equal(t, advo.AdStatusDraft, draft.Status())

	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "10", w.Available().String())
}

func TestBotModeration(t *testing.T) {
	f := setupModeration(t, nil)
	ctx := context.Background()

	b, err := bot.NewBot(2, 123456, "shop_helper_bot", "Shop Helper", "enc-token", "hash")
	require.NoError(t, err)
	require.NoError(t, f.botRepo.Create(ctx, b))

	pending, err := f.svc.PendingBots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := f.svc.ApproveBot(ctx, 9, b.SID())
	require.NoError(t, err)
	assert.Equal(t, botvo.BotStatusActive, approved.Status())

	suspended, err := f.svc.SuspendBot(ctx, 9, b.SID(), "spam complaints")
	require.NoError(t, err)
	assert.Equal(t, botvo.BotStatusSuspended, suspended.Status())

	trail, err := f.svc.AuditTrail(ctx, moderation.KindBot, b.SID(), 10)
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}
