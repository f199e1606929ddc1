package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	adRequestPrefix = "adserver:req:"
	// AdRequestReplayTTL caps how long a requestId replays the stored
	// response. Longer windows would replay stale creatives.
	AdRequestReplayTTL = 60 * time.Second
)

// AdRequestCache replays ad-server responses for repeated requestIds so
// client retries do not record duplicate impressions.
type AdRequestCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAdRequestCache creates an ad request cache with the default replay window.
func NewAdRequestCache(client *redis.Client) *AdRequestCache {
	return &AdRequestCache{client: client, ttl: AdRequestReplayTTL}
}

// Lookup returns the stored response for the requestId, if any.
func (c *AdRequestCache) Lookup(ctx context.Context, botID uint, requestID string) ([]byte, bool, error) {
	if requestID == "" {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, c.buildKey(botID, requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up ad request: %w", err)
	}
	return data, true, nil
}

// Store associates the response with the requestId for the replay window.
func (c *AdRequestCache) Store(ctx context.Context, botID uint, requestID string, response []byte) error {
	if requestID == "" {
		return nil
	}

	if err := c.client.Set(ctx, c.buildKey(botID, requestID), response, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store ad request response: %w", err)
	}
	return nil
}

func (c *AdRequestCache) buildKey(botID uint, requestID string) string {
	return adRequestPrefix + strconv.FormatUint(uint64(botID), 10) + ":" + requestID
}
