package usecases

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type stubSettings struct{}

func (stubSettings) PlatformFeePercentage(context.Context) decimal.Decimal {
	return decimal.NewFromInt(20)
}
func (stubSettings) DefaultBaseCPM(context.Context) decimal.Decimal { return decimal.NewFromInt(2) }
func (stubSettings) MinWithdrawUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(10) }
func (stubSettings) MaxDailyWithdrawUSD(context.Context) decimal.Decimal {
	return decimal.NewFromInt(500)
}
func (stubSettings) WithdrawFeeUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(3) }
func (stubSettings) AdFrequencyMinutes(context.Context) int         { return 3 }
func (stubSettings) PendingTxTTLMinutes(context.Context) int        { return 30 }
func (stubSettings) IsMaintenanceMode(context.Context) bool         { return false }

type fixture struct {
	gdb       *gorm.DB
	txMgr     *db.TransactionManager
	walletSvc *appWallet.Service

	create  *CreateAdUseCase
	update  *UpdateAdUseCase
	submit  *SubmitAdUseCase
	cancel  *CancelAdUseCase
	pause   *PauseAdUseCase
	resume  *ResumeAdUseCase
	get     *GetAdUseCase
	list    *ListAdsUseCase
	archive *ArchiveAdUseCase
}

func setupFixture(t *testing.T) *fixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAdTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigrateUserTables(gdb))

	log := logger.NewLogger()
	txMgr := db.NewTransactionManager(gdb)
	adRepo := repository.NewAdRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	walletSvc := appWallet.NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		log,
	)
	pricingSvc := appPricing.NewService(
		repository.NewPricingTierRepository(gdb),
		stubSettings{},
		repository.NewAuditLogRepository(gdb),
		log,
	)

	return &fixture{
		gdb:       gdb,
		txMgr:     txMgr,
		walletSvc: walletSvc,
		create:    NewCreateAdUseCase(adRepo, pricingSvc, log),
		update:    NewUpdateAdUseCase(adRepo, pricingSvc, log),
		submit:    NewSubmitAdUseCase(adRepo, userRepo, walletSvc, txMgr, nil, log),
		cancel:    NewCancelAdUseCase(adRepo, walletSvc, txMgr, log),
		pause:     NewPauseAdUseCase(adRepo, log),
		resume:    NewResumeAdUseCase(adRepo, log),
		get:       NewGetAdUseCase(adRepo, log),
		list:      NewListAdsUseCase(adRepo, log),
		archive:   NewArchiveAdUseCase(adRepo, log),
	}
}

func draftCommand(advertiserID uint, impressions int64) CreateAdCommand {
	return CreateAdCommand{
		AdvertiserID: advertiserID,
		Content: ContentInput{
			ContentType: vo.ContentTypeText.String(),
			Text:        "Try our new AI assistant",
			Category:    "ai",
		},
		Order: OrderInput{
			TargetImpressions: impressions,
		},
	}
}

func TestCreateAd_PricesDraftFromFallbackCPM(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	// 10k impressions at base $2 CPM with the ai category at x1.3.
	assert.Equal(t, vo.AdStatusDraft, draft.Status())
	assert.Equal(t, "26", draft.TotalCost().String())
	assert.Equal(t, "2.6", draft.FinalCPM().String())
	assert.True(t, draft.RemainingBudget().IsZero())
}

func TestSubmitAd_EscrowsFullBudget(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.walletSvc.Credit(ctx, 1, decimal.NewFromInt(100), appWallet.NoRef, "deposit")
	require.NoError(t, err)

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	submitted, err := f.submit.Execute(ctx, SubmitAdCommand{AdSID: draft.SID(), AdvertiserID: 1})
	require.NoError(t, err)
	assert.Equal(t, vo.AdStatusSubmitted, submitted.Status())
	assert.True(t, submitted.RemainingBudget().Equal(submitted.TotalCost()))

	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "74", w.Available().String())
	assert.Equal(t, "26", w.Reserved().String())
}

func TestSubmitAd_InsufficientFundsRollsBack(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.walletSvc.Credit(ctx, 1, decimal.NewFromInt(5), appWallet.NoRef, "deposit")
	require.NoError(t, err)

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	_, err = f.submit.Execute(ctx, SubmitAdCommand{AdSID: draft.SID(), AdvertiserID: 1})
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	// The status change rolled back with the failed reserve.
	reloaded, err := f.get.Execute(ctx, GetAdQuery{AdSID: draft.SID(), RequesterID: 1})
	require.NoError(t, err)
	assert.Equal(t, vo.AdStatusDraft, reloaded.Status())
}

func TestCancelAd_RefundsEscrowWhileUnderReview(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	_, err := f.walletSvc.Credit(ctx, 1, decimal.NewFromInt(100), appWallet.NoRef, "deposit")
	require.NoError(t, err)

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)
	_, err = f.submit.Execute(ctx, SubmitAdCommand{AdSID: draft.SID(), AdvertiserID: 1})
	require.NoError(t, err)

	cancelled, err := f.cancel.Execute(ctx, CancelAdCommand{AdSID: draft.SID(), RequesterID: 1})
	require.NoError(t, err)
	assert.Equal(t, vo.AdStatusCancelled, cancelled.Status())

	w, err := f.walletSvc.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "100", w.Available().String())
	assert.True(t, w.Reserved().IsZero())

	result, err := f.walletSvc.VerifyBalance(ctx, 1)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestUpdateAd_RepricesDraft(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	updated, err := f.update.Execute(ctx, UpdateAdCommand{
		AdSID:        draft.SID(),
		AdvertiserID: 1,
		Order: &OrderInput{
			TargetImpressions: 20000,
		},
	})
	require.NoError(t, err)
	// Category survives the order edit and the price doubles with volume.
	assert.Equal(t, "52", updated.TotalCost().String())
	assert.EqualValues(t, 20000, updated.TargetImpressions())
}

func TestGetAd_HidesForeignAds(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	_, err = f.get.Execute(ctx, GetAdQuery{AdSID: draft.SID(), RequesterID: 2})
	assert.Error(t, err)

	got, err := f.get.Execute(ctx, GetAdQuery{AdSID: draft.SID(), RequesterID: 2, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, draft.SID(), got.SID())
}

func TestPauseAd_RejectsDraft(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	_, err = f.pause.Execute(ctx, PauseAdCommand{AdSID: draft.SID(), AdvertiserID: 1})
	assert.Error(t, err)
}

func TestArchiveAd_TerminalOnly(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	draft, err := f.create.Execute(ctx, draftCommand(1, 10000))
	require.NoError(t, err)

	_, err = f.archive.Execute(ctx, ArchiveAdCommand{AdSID: draft.SID(), AdvertiserID: 1, Archived: true})
	assert.Error(t, err)

	cancelled, err := f.cancel.Execute(ctx, CancelAdCommand{AdSID: draft.SID(), RequesterID: 1})
	require.NoError(t, err)
	require.Equal(t, vo.AdStatusCancelled, cancelled.Status())

	archived, err := f.archive.Execute(ctx, ArchiveAdCommand{AdSID: draft.SID(), AdvertiserID: 1, Archived: true})
	require.NoError(t, err)
	assert.True(t, archived.IsArchived())
}
