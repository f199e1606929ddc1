package handlers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	botvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
)

func TestToBotResponse_APIKeyIssuedAt(t *testing.T) {
	t.Run("fresh bot carries the issue time", func(t *testing.T) {
		b, err := bot.NewBot(1, 7000000001, "quiz_bot", "Quiz Bot", "enc", "hash")
		require.NoError(t, err)

		resp := ToBotResponse(b)
		require.NotNil(t, resp.APIKeyIssuedAt)
		assert.WithinDuration(t, time.Now(), *resp.APIKeyIssuedAt, time.Minute)
	})

	t.Run("bot without an issued key omits the field", func(t *testing.T) {
		b := bot.ReconstructBot(bot.BotReconstructParams{
			ID:            2,
			SID:           "bot_legacy",
			OwnerID:       1,
			TelegramBotID: 7000000002,
			Username:      "legacy_bot",
			Status:        botvo.BotStatusPending,
			TotalEarnings: decimal.Zero,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		})

		resp := ToBotResponse(b)
		assert.Nil(t, resp.APIKeyIssuedAt)
	})
}
