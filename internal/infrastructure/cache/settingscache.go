package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	settingsCachePrefix = "settings:cache:"
	// SettingsCacheTTL keeps hot-path reads cheap without letting admin
	// edits lag for long on instances that miss the invalidation.
	SettingsCacheTTL = time.Minute
)

// SettingsCache fronts the platform settings table for read-heavy paths like
// ad delivery. Writes go through Invalidate so the next read refills.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsCache creates a settings cache with the default TTL.
func NewSettingsCache(client *redis.Client) *SettingsCache {
	return &SettingsCache{client: client, ttl: SettingsCacheTTL}
}

// Get returns the cached raw value for the settings key.
func (c *SettingsCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.buildKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read settings cache: %w", err)
	}
	return val, true, nil
}

// Set caches the raw value for the settings key.
func (c *SettingsCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.buildKey(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write settings cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached value after a settings write.
func (c *SettingsCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}

func (c *SettingsCache) buildKey(key string) string {
	return settingsCachePrefix + key
}
