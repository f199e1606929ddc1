package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	advo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	payvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	walletvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	withdrawvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.MigrateUserTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigrateBotTables(gdb))
	require.NoError(t, migrations.MigrateAdTables(gdb))
	require.NoError(t, migrations.MigrateDeliveryTables(gdb))
	require.NoError(t, migrations.MigratePaymentTables(gdb))
	require.NoError(t, migrations.MigrateSettingTables(gdb))

	return gdb
}

func TestWalletRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewWalletRepository(gdb)
	ctx := context.Background()

	t.Run("create and fetch by user", func(t *testing.T) {
		w, err := wallet.NewWallet(1)
		require.NoError(t, err)

		err = repo.Create(ctx, w)
		assert.NoError(t, err)
		assert.NotZero(t, w.ID())

		found, err := repo.GetByUserID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, w.SID(), found.SID())
		assert.True(t, found.Available().IsZero())
	})

	t.Run("one wallet per user", func(t *testing.T) {
		w1, err := wallet.NewWallet(2)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, w1))

		w2, err := wallet.NewWallet(2)
		require.NoError(t, err)
		err = repo.Create(ctx, w2)
		assert.Error(t, err)
	})

	t.Run("update persists bucket changes", func(t *testing.T) {
		w, err := wallet.NewWallet(3)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, w))

		require.NoError(t, w.Credit(decimal.NewFromFloat(100)))
		require.NoError(t, w.Reserve(decimal.NewFromFloat(40)))
		require.NoError(t, repo.Update(ctx, w))

		found, err := repo.GetByUserID(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, found.Available().Equal(decimal.NewFromFloat(60)))
		assert.True(t, found.Reserved().Equal(decimal.NewFromFloat(40)))
		assert.True(t, found.TotalDeposited().Equal(decimal.NewFromFloat(100)))
	})

	t.Run("missing wallet yields domain error", func(t *testing.T) {
		_, err := repo.GetByUserID(ctx, 9999)
		assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
	})
}

func TestLedgerRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewLedgerRepository(gdb)
	ctx := context.Background()

	deposit := func(userID uint, amount, balance float64) *wallet.LedgerEntry {
		entry, err := wallet.NewLedgerEntry(
			userID,
			walletvo.EntryTypeDeposit,
			decimal.NewFromFloat(amount),
			decimal.NewFromFloat(balance),
			"test deposit",
		)
		require.NoError(t, err)
		return entry
	}

	t.Run("sum reconstructs the wallet total", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, deposit(1, 50, 50)))
		require.NoError(t, repo.Create(ctx, deposit(1, 25, 75)))

		spend, err := wallet.NewLedgerEntry(1, walletvo.EntryTypeSpend,
			decimal.NewFromFloat(-30), decimal.NewFromFloat(45), "test spend")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, spend))

		sum, err := repo.SumAmountByUserID(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromFloat(45)), "got %s", sum)
	})

	t.Run("sum of empty ledger is zero", func(t *testing.T) {
		sum, err := repo.SumAmountByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("exists by type and ref", func(t *testing.T) {
		entry := deposit(2, 10, 10)
		entry.SetReference("txp_abc123", "transaction")
		require.NoError(t, repo.Create(ctx, entry))

		ok, err := repo.ExistsByTypeAndRef(ctx, "DEPOSIT", "transaction", "txp_abc123")
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByTypeAndRef(ctx, "DEPOSIT", "transaction", "txp_other")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list filters by entry type", func(t *testing.T) {
		entries, total, err := repo.ListByUserID(ctx, 1, wallet.LedgerFilter{EntryType: "DEPOSIT"})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, entries, 2)
	})
}

func newRunningAd(t *testing.T, budget float64, target int64) *ad.Ad {
	t.Helper()

	a, err := ad.NewAd(ad.NewAdParams{
		AdvertiserID:      1,
		ContentType:       advo.ContentTypeText,
		Text:              "Try our new language course",
		Category:          "education",
		TargetImpressions: target,
	})
	require.NoError(t, err)

	cpm := decimal.NewFromFloat(budget).Div(decimal.NewFromInt(target)).Mul(decimal.NewFromInt(1000))
	fee := decimal.NewFromFloat(budget).Mul(decimal.NewFromFloat(0.2))
	require.NoError(t, a.UpdateOrder(nil, target, decimal.Zero, advo.Targeting{}))
	require.NoError(t, a.SetPricing(
		decimal.NewFromFloat(4.5),
		decimal.Zero,
		cpm,
		decimal.NewFromFloat(budget),
		fee,
		decimal.NewFromFloat(budget).Sub(fee),
	))
	require.NoError(t, a.Submit())
	require.NoError(t, a.Approve(99))
	return a
}

func TestAdRepository_ApplyDelivery(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAdRepository(gdb)
	ctx := context.Background()

	t.Run("decrements budget while guarded", func(t *testing.T) {
		a := newRunningAd(t, 10, 2000)
		require.NoError(t, repo.Create(ctx, a))

		revenue := decimal.NewFromFloat(0.005)
		ok, err := repo.ApplyDelivery(ctx, a.ID(), revenue)
		assert.NoError(t, err)
		assert.True(t, ok)

		found, err := repo.GetByID(ctx, a.ID())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), found.DeliveredImpressions())
		assert.True(t, found.RemainingBudget().Equal(decimal.NewFromFloat(9.995)),
			"got %s", found.RemainingBudget())
	})

	t.Run("refuses when budget is exhausted", func(t *testing.T) {
		a := newRunningAd(t, 0.005, 1)
		require.NoError(t, repo.Create(ctx, a))

		ok, err := repo.ApplyDelivery(ctx, a.ID(), decimal.NewFromFloat(0.005))
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ApplyDelivery(ctx, a.ID(), decimal.NewFromFloat(0.005))
		assert.NoError(t, err)
		assert.False(t, ok, "second delivery must be rejected")
	})

	t.Run("refuses non-running ads", func(t *testing.T) {
		a := newRunningAd(t, 10, 2000)
		require.NoError(t, a.Pause())
		require.NoError(t, repo.Create(ctx, a))

		ok, err := repo.ApplyDelivery(ctx, a.ID(), decimal.NewFromFloat(0.005))
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round trips buttons and targeting", func(t *testing.T) {
		btn, err := advo.NewButton("Open", "https://example.com", advo.ButtonColorBlue)
		require.NoError(t, err)

		a, err := ad.NewAd(ad.NewAdParams{
			AdvertiserID: 2,
			ContentType:  advo.ContentTypeText,
			Text:         "With button",
			Buttons:      []advo.Button{btn},
			Category:     "tech",
		})
		require.NoError(t, err)
		targeting, err := advo.NewTargeting([]string{"crypto"}, []uint{7}, []int64{555}, []string{"en"})
		require.NoError(t, err)
		require.NoError(t, a.UpdateOrder(nil, 1000, decimal.Zero, targeting))
		require.NoError(t, repo.Create(ctx, a))

		found, err := repo.GetByID(ctx, a.ID())
		require.NoError(t, err)
		require.Len(t, found.Buttons(), 1)
		assert.Equal(t, "Open", found.Buttons()[0].Text())
		assert.Equal(t, []string{"crypto"}, found.Targeting().AISegments())
		assert.True(t, found.Targeting().MatchesBot(7))
		assert.False(t, found.Targeting().MatchesBot(8))
	})
}

func TestBotRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewBotRepository(gdb)
	ctx := context.Background()

	newBot := func(tgID int64, username string) *bot.Bot {
		b, err := bot.NewBot(1, tgID, username, "Test Bot", "enc:token", "hash-"+username)
		require.NoError(t, err)
		return b
	}

	t.Run("create and lookup by key hash", func(t *testing.T) {
		b := newBot(7000000001, "quiz_bot")
		require.NoError(t, repo.Create(ctx, b))

		found, err := repo.GetByAPIKeyHash(ctx, "hash-quiz_bot")
		assert.NoError(t, err)
		assert.Equal(t, b.SID(), found.SID())
	})

	t.Run("revoked keys are invisible to hash lookup", func(t *testing.T) {
		b := newBot(7000000002, "revoked_bot")
		require.NoError(t, repo.Create(ctx, b))
		require.NoError(t, b.RevokeKey())
		require.NoError(t, repo.Update(ctx, b))

		_, err := repo.GetByAPIKeyHash(ctx, "hash-revoked_bot")
		assert.ErrorIs(t, err, bot.ErrBotNotFound)
	})

	t.Run("telegram bot id is unique", func(t *testing.T) {
		b1 := newBot(7000000003, "first_bot")
		require.NoError(t, repo.Create(ctx, b1))

		b2 := newBot(7000000003, "second_bot")
		err := repo.Create(ctx, b2)
		assert.Error(t, err)
	})

	t.Run("count by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		assert.NoError(t, err)
		assert.NotZero(t, counts["PENDING"])
	})
}

func TestTransactionRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	t.Run("provider binding is retrievable", func(t *testing.T) {
		tx, err := payment.NewDepositTransaction(1, payvo.ProviderPayme, decimal.NewFromFloat(25))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))

		require.NoError(t, tx.BindProvider("payme-tx-1"))
		require.NoError(t, repo.Update(ctx, tx))

		found, err := repo.GetByProviderTxID(ctx, payvo.ProviderPayme, "payme-tx-1")
		assert.NoError(t, err)
		assert.Equal(t, tx.SID(), found.SID())
		assert.NotNil(t, found.ProviderBoundAt())
	})

	t.Run("unknown provider tx yields domain error", func(t *testing.T) {
		_, err := repo.GetByProviderTxID(ctx, payvo.ProviderPayme, "missing")
		assert.ErrorIs(t, err, payment.ErrTransactionNotFound)
	})

	t.Run("stale pending listing respects cutoff", func(t *testing.T) {
		tx, err := payment.NewDepositTransaction(2, payvo.ProviderClick, decimal.NewFromFloat(10))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))

		stale, err := repo.ListStalePending(ctx, time.Now().Add(time.Minute), 10)
		assert.NoError(t, err)
		assert.NotEmpty(t, stale)

		stale, err = repo.ListStalePending(ctx, time.Now().Add(-time.Hour), 10)
		assert.NoError(t, err)
		assert.Empty(t, stale)
	})
}

func TestWithdrawRequestRepository_DailyCap(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewWithdrawRequestRepository(gdb)
	ctx := context.Background()

	newRequest := func(userID uint, amount float64) *withdrawal.WithdrawRequest {
		w, err := withdrawal.NewWithdrawRequest(
			userID,
			"usdt",
			withdrawvo.NetworkBEP20,
			"0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
			decimal.NewFromFloat(amount),
			decimal.NewFromFloat(3),
		)
		require.NoError(t, err)
		return w
	}

	t.Run("sums only matching statuses since cutoff", func(t *testing.T) {
		w1 := newRequest(1, 50)
		require.NoError(t, repo.Create(ctx, w1))

		w2 := newRequest(1, 80)
		require.NoError(t, w2.Cancel())
		require.NoError(t, repo.Create(ctx, w2))

		since := time.Now().Add(-24 * time.Hour)
		sum, err := repo.SumAmountByUserSince(ctx, 1, since,
			withdrawvo.DailyCapStatuses())
		assert.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromFloat(50)), "got %s", sum)
	})

	t.Run("empty status list sums nothing", func(t *testing.T) {
		sum, err := repo.SumAmountByUserSince(ctx, 1, time.Now().Add(-time.Hour), nil)
		assert.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestBotUserRepository_Upsert(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewBotUserRepository(gdb)
	ctx := context.Background()

	profile := delivery.TelegramProfile{FirstName: "Aziz", LanguageCode: "uz"}

	first, err := delivery.NewBotUser(5, 123456, profile)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	count, err := repo.CountByBot(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Same pair again with a fresher profile must refresh, not duplicate.
	updated := delivery.TelegramProfile{FirstName: "Aziz", LastName: "K", LanguageCode: "uz"}
	second, err := delivery.NewBotUser(5, 123456, updated)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	count, err = repo.CountByBot(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.Get(ctx, 5, 123456)
	require.NoError(t, err)
	assert.Equal(t, "K", found.Profile().LastName)
}

func TestImpressionRepository_Stats(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewImpressionRepository(gdb)
	ctx := context.Background()

	revenue := decimal.NewFromFloat(0.005850)
	fee := decimal.NewFromFloat(0.001170)
	earns := decimal.NewFromFloat(0.004680)

	for i := 0; i < 3; i++ {
		imp, err := delivery.NewImpression(10, 20, int64(1000+i), delivery.TelegramProfile{}, revenue, fee, earns)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, imp))
	}

	stats, err := repo.StatsByAd(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Impressions)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromFloat(0.01755)), "got %s", stats.Revenue)

	empty, err := repo.StatsByAd(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, empty.Impressions)
	assert.True(t, empty.Revenue.IsZero())
}
