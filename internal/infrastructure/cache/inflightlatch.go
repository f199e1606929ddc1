package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	inflightPrefix = "adserver:inflight:"
	// InflightLatchTTL releases latches left behind by crashed requests.
	InflightLatchTTL = 10 * time.Second
)

// InflightLatch serializes ad requests per (bot, telegram user) pair across
// instances. A second request for the same pair while one is in flight backs
// off instead of double-serving.
type InflightLatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInflightLatch creates an in-flight latch with the default TTL.
func NewInflightLatch(client *redis.Client) *InflightLatch {
	return &InflightLatch{client: client, ttl: InflightLatchTTL}
}

// Acquire takes the latch. false means another request holds it.
func (l *InflightLatch) Acquire(ctx context.Context, botID uint, telegramUserID int64) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.buildKey(botID, telegramUserID), 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire inflight latch: %w", err)
	}
	return ok, nil
}

// Release frees the latch.
func (l *InflightLatch) Release(ctx context.Context, botID uint, telegramUserID int64) error {
	return l.client.Del(ctx, l.buildKey(botID, telegramUserID)).Err()
}

func (l *InflightLatch) buildKey(botID uint, telegramUserID int64) string {
	return inflightPrefix + strconv.FormatUint(uint64(botID), 10) + ":" + strconv.FormatInt(telegramUserID, 10)
}
