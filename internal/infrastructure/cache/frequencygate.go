package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

const frequencyGatePrefix = "adserver:freq:"

// FrequencyGate remembers when a telegram user last saw an ad through a bot.
// It is approximate: a lost key means the user sees one extra ad, while a
// present key reliably suppresses repeats within the bot's window.
type FrequencyGate struct {
	client *redis.Client
}

// NewFrequencyGate creates a frequency gate backed by Redis.
func NewFrequencyGate(client *redis.Client) *FrequencyGate {
	return &FrequencyGate{client: client}
}

// LastShownAt returns when the (bot, user) pair last received an ad. ok is
// false when the window has passed or the pair was never served.
func (g *FrequencyGate) LastShownAt(ctx context.Context, botID uint, telegramUserID int64) (time.Time, bool, error) {
	val, err := g.client.Get(ctx, g.buildKey(botID, telegramUserID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read frequency gate: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid frequency gate value: %w", err)
	}
	return time.Unix(unix, 0).UTC(), true, nil
}

// MarkShown records a delivery and holds the gate closed for the window.
func (g *FrequencyGate) MarkShown(ctx context.Context, botID uint, telegramUserID int64, window time.Duration) error {
	if window <= 0 {
		return nil
	}

	key := g.buildKey(botID, telegramUserID)
	if err := g.client.Set(ctx, key, biztime.NowUTC().Unix(), window).Err(); err != nil {
		return fmt.Errorf("failed to mark frequency gate: %w", err)
	}
	return nil
}

func (g *FrequencyGate) buildKey(botID uint, telegramUserID int64) string {
	return frequencyGatePrefix + strconv.FormatUint(uint64(botID), 10) + ":" + strconv.FormatInt(telegramUserID, 10)
}
