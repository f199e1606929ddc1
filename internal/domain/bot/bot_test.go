package bot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	b, err := NewBot(1, 7000000001, "@quiz_master_bot", "Quiz Master", "enc:token", "hash-abc")
	require.NoError(t, err)
	return b
}

func TestNewBot(t *testing.T) {
	t.Run("creates pending bot with defaults", func(t *testing.T) {
		b := newTestBot(t)

		assert.Equal(t, valueobjects.BotStatusPending, b.Status())
		assert.Equal(t, "quiz_master_bot", b.Username())
		assert.Equal(t, DefaultFrequencyMinutes, b.FrequencyMinutes())
		assert.False(t, b.CanServe())
		assert.False(t, b.IsMonetized())
		assert.True(t, b.TotalEarnings().IsZero())
		assert.NotEmpty(t, b.SID())
		assert.Len(t, b.GetEvents(), 1)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := NewBot(0, 7000000001, "bot", "title", "tok", "hash")
		assert.ErrorIs(t, err, ErrInvalidOwner)

		_, err = NewBot(1, 0, "bot", "title", "tok", "hash")
		assert.ErrorIs(t, err, ErrInvalidTelegramBotID)

		_, err = NewBot(1, 7000000001, "", "title", "tok", "hash")
		assert.ErrorIs(t, err, ErrInvalidUsername)

		_, err = NewBot(1, 7000000001, "bot", "title", "", "hash")
		assert.ErrorIs(t, err, ErrMissingBotToken)

		_, err = NewBot(1, 7000000001, "bot", "title", "tok", "")
		assert.ErrorIs(t, err, ErrMissingAPIKeyHash)
	})
}

func TestBotModeration(t *testing.T) {
	t.Run("approve activates and monetizes", func(t *testing.T) {
		b := newTestBot(t)

		require.NoError(t, b.Approve())

		assert.Equal(t, valueobjects.BotStatusActive, b.Status())
		assert.True(t, b.IsMonetized())
		assert.True(t, b.CanServe())
	})

	t.Run("reject is terminal", func(t *testing.T) {
		b := newTestBot(t)

		require.NoError(t, b.Reject("spam content"))

		assert.Equal(t, valueobjects.BotStatusRejected, b.Status())
		assert.Equal(t, "spam content", b.RejectReason())
		assert.Error(t, b.Approve())
	})

	t.Run("suspend pulls active bot out of rotation", func(t *testing.T) {
		b := newTestBot(t)
		require.NoError(t, b.Approve())

		require.NoError(t, b.Suspend("policy violation"))

		assert.Equal(t, valueobjects.BotStatusSuspended, b.Status())
		assert.False(t, b.CanServe())
		assert.Error(t, b.Approve())
	})

	t.Run("cannot suspend pending bot", func(t *testing.T) {
		b := newTestBot(t)
		assert.Error(t, b.Suspend("reason"))
	})
}

func TestBotPauseResume(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.Approve())

	require.NoError(t, b.Pause())
	assert.True(t, b.IsPaused())
	assert.False(t, b.CanServe())
	assert.ErrorIs(t, b.Pause(), ErrBotAlreadyPaused)

	require.NoError(t, b.Resume())
	assert.False(t, b.IsPaused())
	assert.True(t, b.CanServe())
	assert.ErrorIs(t, b.Resume(), ErrBotNotPaused)
}

func TestBotPauseRequiresActive(t *testing.T) {
	b := newTestBot(t)
	assert.ErrorIs(t, b.Pause(), ErrBotNotActive)
}

func TestBotKeyLifecycle(t *testing.T) {
	b := newTestBot(t)
	require.NoError(t, b.Approve())
	issued := b.APIKeyIssuedAt()

	t.Run("revoke disables serving", func(t *testing.T) {
		require.NoError(t, b.RevokeKey())
		assert.True(t, b.IsAPIKeyRevoked())
		assert.False(t, b.CanServe())
		assert.ErrorIs(t, b.RevokeKey(), ErrAPIKeyAlreadyRevoked)
	})

	t.Run("rotate installs new hash and clears revocation", func(t *testing.T) {
		require.NoError(t, b.RotateKey("hash-new"))
		assert.Equal(t, "hash-new", b.APIKeyHash())
		assert.False(t, b.IsAPIKeyRevoked())
		assert.True(t, b.CanServe())
		assert.True(t, b.APIKeyIssuedAt().After(issued) || b.APIKeyIssuedAt().Equal(issued))
	})

	t.Run("rotate rejects empty hash", func(t *testing.T) {
		assert.ErrorIs(t, b.RotateKey(""), ErrMissingAPIKeyHash)
	})
}

func TestBotCategoryBlocklist(t *testing.T) {
	b := newTestBot(t)

	b.SetBlockedCategories([]string{"Gambling", " crypto ", "gambling", ""})

	assert.Equal(t, []string{"gambling", "crypto"}, b.BlockedCategories())
	assert.False(t, b.CategoryAllowed("gambling"))
	assert.False(t, b.CategoryAllowed("CRYPTO"))
	assert.True(t, b.CategoryAllowed("education"))
}

func TestBotFrequency(t *testing.T) {
	b := newTestBot(t)

	assert.ErrorIs(t, b.SetFrequency(10), ErrFrequencyTooLow)

	require.NoError(t, b.SetFrequency(60))
	assert.Equal(t, 60, b.FrequencyMinutes())
	assert.Equal(t, time.Hour, b.FrequencyWindow())
}

func TestBotMemberCounts(t *testing.T) {
	b := newTestBot(t)

	b.UpdateMemberCounts(1000, 1500)
	assert.Equal(t, int64(1000), b.TotalMembers())
	assert.Equal(t, int64(1000), b.ActiveMembers())

	b.UpdateMemberCounts(-5, -10)
	assert.Equal(t, int64(0), b.TotalMembers())
	assert.Equal(t, int64(0), b.ActiveMembers())
}

func TestBotEarnings(t *testing.T) {
	b := newTestBot(t)

	require.NoError(t, b.AddEarnings(decimal.RequireFromString("0.004680")))
	require.NoError(t, b.AddEarnings(decimal.RequireFromString("0.004680")))

	assert.True(t, b.TotalEarnings().Equal(decimal.RequireFromString("0.009360")))
	assert.True(t, b.PendingEarnings().Equal(decimal.RequireFromString("0.009360")))

	assert.ErrorIs(t, b.AddEarnings(decimal.NewFromInt(-1)), ErrNegativeEarnings)

	require.NoError(t, b.SettlePendingEarnings(decimal.RequireFromString("0.009360")))
	assert.True(t, b.PendingEarnings().IsZero())
	assert.True(t, b.TotalEarnings().Equal(decimal.RequireFromString("0.009360")))

	assert.ErrorIs(t, b.SettlePendingEarnings(decimal.NewFromInt(1)), ErrSettleExceedsPending)
}

func TestBotMarkServed(t *testing.T) {
	b := newTestBot(t)
	require.Nil(t, b.LastServedAt())

	now := time.Now()
	b.MarkServed(now)

	require.NotNil(t, b.LastServedAt())
	assert.Equal(t, now, *b.LastServedAt())
}

func TestReconstructBot(t *testing.T) {
	now := time.Now()
	b := ReconstructBot(BotReconstructParams{
		ID:               42,
		SID:              "bot_abc123",
		OwnerID:          7,
		TelegramBotID:    7000000001,
		Username:         "quiz_master_bot",
		Status:           valueobjects.BotStatusActive,
		Monetized:        true,
		APIKeyHash:       "hash-abc",
		FrequencyMinutes: 0,
		TotalEarnings:    decimal.RequireFromString("12.50"),
		PendingEarnings:  decimal.RequireFromString("2.50"),
		CreatedAt:        now,
		UpdatedAt:        now,
	})

	assert.Equal(t, uint(42), b.ID())
	assert.Equal(t, "bot_abc123", b.SID())
	assert.Equal(t, DefaultFrequencyMinutes, b.FrequencyMinutes())
	assert.True(t, b.CanServe())
	assert.Empty(t, b.GetEvents())
}

func TestBotStatusTransitions(t *testing.T) {
	cases := []struct {
		from    valueobjects.BotStatus
		to      valueobjects.BotStatus
		allowed bool
	}{
		{valueobjects.BotStatusPending, valueobjects.BotStatusActive, true},
		{valueobjects.BotStatusPending, valueobjects.BotStatusRejected, true},
		{valueobjects.BotStatusPending, valueobjects.BotStatusSuspended, false},
		{valueobjects.BotStatusActive, valueobjects.BotStatusSuspended, true},
		{valueobjects.BotStatusActive, valueobjects.BotStatusPending, false},
		{valueobjects.BotStatusRejected, valueobjects.BotStatusActive, false},
		{valueobjects.BotStatusSuspended, valueobjects.BotStatusActive, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, valueobjects.BotStatusRejected.IsTerminal())
	assert.True(t, valueobjects.BotStatusSuspended.IsTerminal())
	assert.False(t, valueobjects.BotStatusPending.IsTerminal())
}
