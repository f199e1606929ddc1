package withdrawal

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	paymentvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// wdSettings: min 10, daily cap 100, fixed fee 1.
type wdSettings struct{}

func (wdSettings) PlatformFeePercentage(context.Context) decimal.Decimal {
	return decimal.NewFromInt(20)
}
func (wdSettings) DefaultBaseCPM(context.Context) decimal.Decimal { return decimal.NewFromInt(2) }
func (wdSettings) MinWithdrawUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(10) }
func (wdSettings) MaxDailyWithdrawUSD(context.Context) decimal.Decimal {
	return decimal.NewFromInt(100)
}
func (wdSettings) WithdrawFeeUSD(context.Context) decimal.Decimal { return decimal.NewFromInt(1) }
func (wdSettings) AdFrequencyMinutes(context.Context) int         { return 60 }
func (wdSettings) PendingTxTTLMinutes(context.Context) int        { return 30 }
func (wdSettings) IsMaintenanceMode(context.Context) bool         { return false }

const bep20Addr = "0x52908400098527886E0F7030069857D2E4169EE7"

type wdFixture struct {
	svc       *Service
	walletSvc *appWallet.Service
	txRepo    payment.Repository
	auditRepo moderation.AuditLogRepository
	userID    uint
}

func setupWithdrawals(t *testing.T) *wdFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigratePaymentTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigrateUserTables(gdb))
	require.NoError(t, migrations.MigrateSettingTables(gdb))

	log := logger.NewLogger()
	txMgr := db.NewTransactionManager(gdb)
	userRepo := repository.NewUserRepository(gdb)
	txRepo := repository.NewTransactionRepository(gdb)
	auditRepo := repository.NewAuditLogRepository(gdb)
	walletSvc := appWallet.NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		log,
	)
	svc := NewService(
		repository.NewWithdrawRequestRepository(gdb),
		txRepo,
		userRepo,
		auditRepo,
		walletSvc,
		wdSettings{},
		txMgr,
		nil,
		log,
	)

	u, err := user.NewUser(777001, "Owner", "", "bot_owner", "en")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), u))

	// earned balance to withdraw from
	_, err = walletSvc.CreditEarnings(context.Background(), u.ID(), decimal.NewFromInt(80), appWallet.NoRef, "earnings")
	require.NoError(t, err)

	return &wdFixture{svc: svc, walletSvc: walletSvc, txRepo: txRepo, auditRepo: auditRepo, userID: u.ID()}
}

func (f *wdFixture) wallet(t *testing.T) (available, reserved string) {
	w, err := f.walletSvc.GetWallet(context.Background(), f.userID)
	require.NoError(t, err)
	return w.Available().String(), w.Reserved().String()
}

func TestCreate_ReservesAmountPlusFee(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusRequested, w.Status())
	assert.Equal(t, "49", w.NetAmount().String())
	assert.Equal(t, "51", w.ReservedAmount().String())

	available, reserved := f.wallet(t)
	assert.Equal(t, "29", available)
	assert.Equal(t, "51", reserved)
}

func TestCreate_EnforcesMinimumAndDailyCap(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, withdrawal.ErrBelowMinimum)

	_, err = f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(60))
	require.NoError(t, err)

	// 60 already requested today; 50 more would pass the 100 cap
	_, err = f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(50))
	assert.ErrorIs(t, err, withdrawal.ErrDailyCapExceeded)
}

func TestCreate_InsufficientBalanceRollsBack(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	// balance is 80, amount+fee would be 81... use 90 to be clearly over
	_, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(90))
	require.Error(t, err)

	available, reserved := f.wallet(t)
	assert.Equal(t, "80", available)
	assert.Equal(t, "0", reserved)

	_, total, err := f.svc.List(ctx, withdrawal.ListFilter{UserID: &f.userID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreate_RejectsBadAddress(t *testing.T) {
	f := setupWithdrawals(t)

	_, err := f.svc.Create(context.Background(), f.userID, "USDT", vo.NetworkBEP20, "not-an-address", decimal.NewFromInt(20))
	assert.Error(t, err)
}

func TestApprove_SettlesHoldAndRecordsPayout(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(50))
	require.NoError(t, err)

	approved, err := f.svc.Approve(ctx, 9, w.SID(), "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusCompleted, approved.Status())
	assert.Equal(t, "0xdeadbeef", approved.TxHash())

	available, reserved := f.wallet(t)
	assert.Equal(t, "29", available)
	assert.Equal(t, "0", reserved)

	// payout leg recorded as a settled WITHDRAW transaction
	legs, total, err := f.txRepo.List(ctx, payment.ListFilter{UserID: &f.userID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, paymentvo.TransactionTypeWithdraw, legs[0].Type())
	assert.Equal(t, paymentvo.TransactionStatusSuccess, legs[0].Status())
	assert.Equal(t, "50", legs[0].Amount().String())
	assert.Equal(t, "1", legs[0].Fee().String())

	trail, err := f.auditRepo.ListByEntity(ctx, moderation.KindWithdrawal.String(), w.SID(), 10)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, moderation.ActionApprove, trail[0].Action())

	verify, err := f.walletSvc.VerifyBalance(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, verify.Clean)
}

func TestReject_ReturnsHoldToWallet(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkTRC20, "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8", decimal.NewFromInt(30))
	require.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, 9, w.SID(), "address flagged")
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusRejected, rejected.Status())
	assert.Equal(t, "address flagged", rejected.Reason())

	available, reserved := f.wallet(t)
	assert.Equal(t, "80", available)
	assert.Equal(t, "0", reserved)

	_, err = f.svc.Reject(ctx, 9, w.SID(), "again")
	assert.Error(t, err)
}

func TestReject_RequiresReason(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, 9, w.SID(), "")
	assert.ErrorIs(t, err, withdrawal.ErrReasonRequired)
}

func TestCancel_OnlyOwnerBeforeReview(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, f.userID+1, w.SID())
	assert.ErrorIs(t, err, withdrawal.ErrWithdrawalNotFound)

	cancelled, err := f.svc.Cancel(ctx, f.userID, w.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusCancelled, cancelled.Status())

	available, reserved := f.wallet(t)
	assert.Equal(t, "80", available)
	assert.Equal(t, "0", reserved)

	// once under review, cancellation is closed to the owner
	w2, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(20))
	require.NoError(t, err)
	_, err = f.svc.TakeForReview(ctx, 9, w2.SID())
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, f.userID, w2.SID())
	assert.ErrorIs(t, err, withdrawal.ErrNotCancellable)
}

func TestTakeForReview_ThenApprove(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(25))
	require.NoError(t, err)

	staged, err := f.svc.TakeForReview(ctx, 9, w.SID())
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusPendingReview, staged.Status())

	approved, err := f.svc.Approve(ctx, 9, w.SID(), "0xfeed")
	require.NoError(t, err)
	assert.Equal(t, vo.WithdrawStatusCompleted, approved.Status())
}

func TestGet_HidesForeignRequests(t *testing.T) {
	f := setupWithdrawals(t)
	ctx := context.Background()

	w, err := f.svc.Create(ctx, f.userID, "USDT", vo.NetworkBEP20, bep20Addr, decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, w.SID(), f.userID+1, false)
	assert.ErrorIs(t, err, withdrawal.ErrWithdrawalNotFound)

	got, err := f.svc.Get(ctx, w.SID(), f.userID+1, true)
	require.NoError(t, err)
	assert.Equal(t, f.userID, got.UserID())
}
