package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
)

// --- helpers ---

func pendingDeposit(t *testing.T) *Transaction {
	t.Helper()
	tx, err := NewDepositTransaction(1, vo.ProviderPayme, decimal.RequireFromString("25.00"))
	require.NoError(t, err)
	return tx
}

func TestNewDepositTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tx := pendingDeposit(t)

		assert.Equal(t, vo.TransactionTypeDeposit, tx.Type())
		assert.Equal(t, vo.ProviderPayme, tx.Provider())
		assert.Equal(t, vo.TransactionStatusPending, tx.Status())
		assert.Nil(t, tx.ProviderTxID())
		assert.True(t, tx.Fee().IsZero())
		assert.NotEmpty(t, tx.SID())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewDepositTransaction(0, vo.ProviderPayme, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidUser)

		_, err = NewDepositTransaction(1, vo.ProviderInternal, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidProvider)

		_, err = NewDepositTransaction(1, vo.Provider("paypal"), decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidProvider)

		_, err = NewDepositTransaction(1, vo.ProviderPayme, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestNewCryptoDeposit(t *testing.T) {
	tx, err := NewCryptoDeposit(1, "USDT", "TRC-20", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.Equal(t, vo.ProviderCryptopay, tx.Provider())
	assert.Equal(t, "USDT", tx.Coin())
	assert.Equal(t, "TRC-20", tx.Network())

	_, err = NewCryptoDeposit(1, "", "TRC-20", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestNewWithdrawTransaction(t *testing.T) {
	tx, err := NewWithdrawTransaction(2, decimal.NewFromInt(50), decimal.NewFromInt(3), "USDT", "BEP-20")
	require.NoError(t, err)

	assert.Equal(t, vo.TransactionTypeWithdraw, tx.Type())
	assert.Equal(t, vo.ProviderInternal, tx.Provider())
	assert.True(t, tx.NetAmount().Equal(decimal.NewFromInt(47)))
}

func TestBindProvider(t *testing.T) {
	t.Run("first bind wins", func(t *testing.T) {
		tx := pendingDeposit(t)

		require.NoError(t, tx.BindProvider("payme_tx_1"))
		require.NotNil(t, tx.ProviderTxID())
		assert.Equal(t, "payme_tx_1", *tx.ProviderTxID())
		require.NotNil(t, tx.ProviderBoundAt())
	})

	t.Run("repeat with same id is a no-op", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.BindProvider("payme_tx_1"))
		boundAt := *tx.ProviderBoundAt()

		require.NoError(t, tx.BindProvider("payme_tx_1"))
		assert.Equal(t, boundAt, *tx.ProviderBoundAt())
	})

	t.Run("different id refused", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.BindProvider("payme_tx_1"))

		assert.ErrorIs(t, tx.BindProvider("payme_tx_2"), ErrProviderTxMismatch)
	})

	t.Run("empty id refused", func(t *testing.T) {
		tx := pendingDeposit(t)
		assert.ErrorIs(t, tx.BindProvider(""), ErrInvalidProviderTxID)
	})

	t.Run("final leg refused", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.MarkFailed("cancelled", nil))

		assert.ErrorIs(t, tx.BindProvider("payme_tx_1"), ErrTransactionFinal)
	})
}

func TestMarkSuccess(t *testing.T) {
	t.Run("settles pending leg", func(t *testing.T) {
		tx := pendingDeposit(t)

		require.NoError(t, tx.MarkSuccess())

		assert.Equal(t, vo.TransactionStatusSuccess, tx.Status())
		require.NotNil(t, tx.PerformedAt())
	})

	t.Run("repeat preserves original perform time", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.MarkSuccess())
		performedAt := *tx.PerformedAt()

		require.NoError(t, tx.MarkSuccess())
		assert.Equal(t, performedAt, *tx.PerformedAt())
	})

	t.Run("failed leg refused", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.MarkFailed("cancelled", nil))

		assert.ErrorIs(t, tx.MarkSuccess(), ErrTransactionFinal)
	})
}

func TestMarkFailed(t *testing.T) {
	t.Run("cancels pending leg with reason", func(t *testing.T) {
		tx := pendingDeposit(t)
		reason := 3

		require.NoError(t, tx.MarkFailed("cancelled by payer", &reason))

		assert.Equal(t, vo.TransactionStatusFailed, tx.Status())
		assert.Equal(t, "cancelled by payer", tx.FailReason())
		require.NotNil(t, tx.CancelReason())
		assert.Equal(t, 3, *tx.CancelReason())
		require.NotNil(t, tx.CancelledAt())
	})

	t.Run("repeat preserves original cancel time", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.MarkFailed("cancelled", nil))
		cancelledAt := *tx.CancelledAt()

		require.NoError(t, tx.MarkFailed("cancelled again", nil))
		assert.Equal(t, cancelledAt, *tx.CancelledAt())
		assert.Equal(t, "cancelled", tx.FailReason())
	})

	t.Run("settled leg refused", func(t *testing.T) {
		tx := pendingDeposit(t)
		require.NoError(t, tx.MarkSuccess())

		assert.ErrorIs(t, tx.MarkFailed("late cancel", nil), ErrTransactionCompleted)
	})
}

func TestMarkExpired(t *testing.T) {
	tx := pendingDeposit(t)
	require.NoError(t, tx.MarkExpired())
	assert.Equal(t, vo.TransactionStatusFailed, tx.Status())
	assert.Equal(t, "expired", tx.FailReason())

	settled := pendingDeposit(t)
	require.NoError(t, settled.MarkSuccess())
	require.NoError(t, settled.MarkExpired())
	assert.Equal(t, vo.TransactionStatusSuccess, settled.Status())
}

func TestIsStale(t *testing.T) {
	tx := ReconstructTransaction(TransactionReconstructParams{
		ID:        1,
		SID:       "txn_old",
		UserID:    1,
		Type:      vo.TransactionTypeDeposit,
		Provider:  vo.ProviderPayme,
		Amount:    decimal.NewFromInt(10),
		Status:    vo.TransactionStatusPending,
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		UpdatedAt: time.Now().UTC().Add(-2 * time.Hour),
	})

	assert.True(t, tx.IsStale(time.Hour))
	assert.False(t, tx.IsStale(3*time.Hour))

	require.NoError(t, tx.MarkSuccess())
	assert.False(t, tx.IsStale(time.Hour))
}

func TestAmountMatches(t *testing.T) {
	tx := pendingDeposit(t) // 25.00
	tolerance := decimal.RequireFromString("0.01")

	assert.True(t, tx.AmountMatches(decimal.RequireFromString("25.00"), tolerance))
	assert.True(t, tx.AmountMatches(decimal.RequireFromString("25.009"), tolerance))
	assert.False(t, tx.AmountMatches(decimal.RequireFromString("25.02"), tolerance))
	assert.False(t, tx.AmountMatches(decimal.RequireFromString("24.50"), tolerance))
}

func TestReconciliationEntry(t *testing.T) {
	e := NewReconciliationEntry(vo.ProviderClick, "click_999", "complete", `{"click_trans_id":999}`)

	assert.Equal(t, vo.ProviderClick, e.Provider())
	assert.Equal(t, "click_999", e.ProviderTxID())
	assert.Equal(t, "complete", e.Method())
	assert.False(t, e.IsResolved())
	assert.NotZero(t, e.CreatedAt())
}
