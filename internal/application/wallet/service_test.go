package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

func setupService(t *testing.T) (*Service, *db.TransactionManager) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateWalletTables(gdb))

	txMgr := db.NewTransactionManager(gdb)
	svc := NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		logger.NewLogger(),
	)
	return svc, txMgr
}

func TestService_GetWalletLazyCreate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	w, err := svc.GetWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), w.UserID())
	assert.True(t, w.Available().IsZero())

	again, err := svc.GetWallet(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, w.SID(), again.SID())
}

func TestService_DepositFlow(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	w, err := svc.Credit(ctx, 1, decimal.NewFromInt(100), TransactionRef("tx_1"), "payme deposit")
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(100)))
	assert.True(t, w.TotalDeposited().Equal(decimal.NewFromInt(100)))

	entries, total, err := svc.ListLedger(ctx, 1, wallet.LedgerFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, vo.EntryTypeDeposit, entries[0].EntryType())
	assert.True(t, entries[0].Amount().Equal(decimal.NewFromInt(100)))
	assert.True(t, entries[0].Balance().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "tx_1", entries[0].RefID())
	assert.Equal(t, wallet.RefTypeTransaction, entries[0].RefType())
}

func TestService_AdEscrowLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 2, decimal.NewFromInt(100), NoRef, "deposit")
	require.NoError(t, err)

	w, err := svc.ReserveForAd(ctx, 2, decimal.NewFromInt(60), AdRef("ad_1"), "budget hold")
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(40)))
	assert.True(t, w.Reserved().Equal(decimal.NewFromInt(60)))

	w, err = svc.ConfirmAdReserve(ctx, 2, decimal.NewFromInt(60), AdRef("ad_1"), "approved")
	require.NoError(t, err)
	assert.True(t, w.Reserved().IsZero())
	assert.True(t, w.TotalSpent().Equal(decimal.NewFromInt(60)))
	assert.True(t, w.Total().Equal(decimal.NewFromInt(40)))

	// Unspent budget comes back once the ad completes under budget.
	w, err = svc.ReturnBudget(ctx, 2, decimal.NewFromInt(15), AdRef("ad_1"), "unspent budget")
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(55)))

	result, err := svc.VerifyBalance(ctx, 2)
	require.NoError(t, err)
	assert.True(t, result.Clean, "ledger sum %s vs total %s", result.LedgerSum, result.WalletTotal)
}

func TestService_RejectedAdRefundsEscrow(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 3, decimal.NewFromInt(50), NoRef, "deposit")
	require.NoError(t, err)
	_, err = svc.ReserveForAd(ctx, 3, decimal.NewFromInt(50), AdRef("ad_2"), "budget hold")
	require.NoError(t, err)

	w, err := svc.RefundAdReserve(ctx, 3, decimal.NewFromInt(50), AdRef("ad_2"), "rejected")
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(50)))
	assert.True(t, w.Reserved().IsZero())

	// Bucket moves record zero so the ledger still sums to the total.
	result, err := svc.VerifyBalance(ctx, 3)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestService_InsufficientFunds(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 4, decimal.NewFromInt(10), NoRef, "deposit")
	require.NoError(t, err)

	_, err = svc.ReserveForAd(ctx, 4, decimal.NewFromInt(11), AdRef("ad_3"), "budget hold")
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	// The failed operation must leave no ledger trace.
	_, total, err := svc.ListLedger(ctx, 4, wallet.LedgerFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestService_WithdrawalEscrowLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreditEarnings(ctx, 5, decimal.NewFromInt(80), NoRef, "ad revenue")
	require.NoError(t, err)

	w, err := svc.Reserve(ctx, 5, decimal.NewFromInt(53), WithdrawalRef("wd_1"), "withdrawal hold")
	require.NoError(t, err)
	assert.True(t, w.Reserved().Equal(decimal.NewFromInt(53)))

	w, err = svc.ConfirmReserved(ctx, 5, decimal.NewFromInt(53), WithdrawalRef("wd_1"), "payout executed")
	require.NoError(t, err)
	assert.True(t, w.Reserved().IsZero())
	assert.True(t, w.TotalWithdrawn().Equal(decimal.NewFromInt(53)))
	assert.True(t, w.Total().Equal(decimal.NewFromInt(27)))

	result, err := svc.VerifyBalance(ctx, 5)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestService_PendingDepositLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	w, err := svc.AddPending(ctx, 6, decimal.NewFromInt(30), TransactionRef("tx_2"), "crypto deposit seen")
	require.NoError(t, err)
	assert.True(t, w.Pending().Equal(decimal.NewFromInt(30)))
	assert.True(t, w.Available().IsZero())

	w, err = svc.ConfirmPending(ctx, 6, decimal.NewFromInt(30), TransactionRef("tx_2"), "confirmed on chain")
	require.NoError(t, err)
	assert.True(t, w.Pending().IsZero())
	assert.True(t, w.Available().Equal(decimal.NewFromInt(30)))

	result, err := svc.VerifyBalance(ctx, 6)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestService_Adjust(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 8, decimal.NewFromInt(20), NoRef, "deposit")
	require.NoError(t, err)

	w, err := svc.Adjust(ctx, 8, decimal.NewFromInt(-5), AdminRef("usr_admin"), "correction")
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(15)))

	_, err = svc.Adjust(ctx, 8, decimal.NewFromInt(-100), AdminRef("usr_admin"), "overdraw")
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	result, err := svc.VerifyBalance(ctx, 8)
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestService_HasEntry(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	ref := TransactionRef("tx_3")
	exists, err := svc.HasEntry(ctx, vo.EntryTypeDeposit, ref)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Credit(ctx, 9, decimal.NewFromInt(42), ref, "deposit")
	require.NoError(t, err)

	exists, err = svc.HasEntry(ctx, vo.EntryTypeDeposit, ref)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_JoinsCallerTransaction(t *testing.T) {
	svc, txMgr := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 10, decimal.NewFromInt(100), NoRef, "deposit")
	require.NoError(t, err)

	// Both movements share one transaction; the second failing must roll
	// back the first.
	err = txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := svc.ReserveForAd(txCtx, 10, decimal.NewFromInt(40), AdRef("ad_4"), "budget hold"); err != nil {
			return err
		}
		return fmt.Errorf("downstream step failed")
	})
	require.Error(t, err)

	w, err := svc.GetWallet(ctx, 10)
	require.NoError(t, err)
	assert.True(t, w.Available().Equal(decimal.NewFromInt(100)), "rolled-back reserve must not stick")
	assert.True(t, w.Reserved().IsZero())

	_, total, err := svc.ListLedger(ctx, 10, wallet.LedgerFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestService_LedgerReplayMatchesBalanceHistory(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	steps := []func() error{
		func() error { _, err := svc.Credit(ctx, 11, decimal.NewFromInt(200), NoRef, "d1"); return err },
		func() error {
			_, err := svc.ReserveForAd(ctx, 11, decimal.NewFromInt(50), AdRef("ad_5"), "hold")
			return err
		},
		func() error {
			_, err := svc.ConfirmAdReserve(ctx, 11, decimal.NewFromInt(50), AdRef("ad_5"), "approve")
			return err
		},
		func() error {
			_, err := svc.CreditEarnings(ctx, 11, decimal.NewFromFloat(12.5), NoRef, "revenue")
			return err
		},
		func() error {
			_, err := svc.Adjust(ctx, 11, decimal.NewFromFloat(-0.5), AdminRef("usr_admin"), "fix")
			return err
		},
	}
	for _, step := range steps {
		require.NoError(t, step())
	}

	entries, _, err := svc.ListLedger(ctx, 11, wallet.LedgerFilter{Page: 1, PageSize: 50})
	require.NoError(t, err)
	require.Len(t, entries, len(steps))

	// Entries come newest first; replay oldest to newest.
	running := decimal.Zero
	for i := len(entries) - 1; i >= 0; i-- {
		running = running.Add(entries[i].Amount())
		assert.True(t, running.Equal(entries[i].Balance()),
			"entry %s: running %s vs stamped %s", entries[i].EntryType(), running, entries[i].Balance())
	}

	w, err := svc.GetWallet(ctx, 11)
	require.NoError(t, err)
	assert.True(t, running.Equal(w.Total()))
}

func TestService_ErrorsAreSentinels(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Credit(ctx, 12, decimal.NewFromInt(-1), NoRef, "bad")
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = svc.ConfirmPending(ctx, 12, decimal.NewFromInt(5), NoRef, "nothing pending")
	assert.True(t, errors.Is(err, wallet.ErrInsufficientPending))
}
