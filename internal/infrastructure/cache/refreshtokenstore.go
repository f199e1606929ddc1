package cache

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenPrefix = "auth:refresh:"
	// RefreshTokenTTL matches the refresh JWT lifetime so the replay check
	// cannot outlive the token itself.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrRefreshTokenMismatch is returned when the presented token does not match
// the stored one.
var ErrRefreshTokenMismatch = errors.New("refresh token is not recognized")

// RefreshTokenStore pins the single valid refresh token per user in Redis.
// Issuing a new token overwrites the previous one, so a replay of a
// rotated-out token fails even though its signature still verifies.
type RefreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenStore creates a refresh token store with the default TTL.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client, ttl: RefreshTokenTTL}
}

// Save stores the user's current refresh token, replacing any previous one.
func (s *RefreshTokenStore) Save(ctx context.Context, userID uint, token string) error {
	if token == "" {
		return errors.New("refresh token cannot be empty")
	}
	if err := s.client.Set(ctx, s.buildKey(userID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Verify checks the presented token against the stored one.
func (s *RefreshTokenStore) Verify(ctx context.Context, userID uint, token string) error {
	stored, err := s.client.Get(ctx, s.buildKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrRefreshTokenMismatch
		}
		return fmt.Errorf("failed to get refresh token: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return ErrRefreshTokenMismatch
	}
	return nil
}

// Revoke drops the stored token, ending the user's session server-side.
func (s *RefreshTokenStore) Revoke(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, s.buildKey(userID)).Err()
}

func (s *RefreshTokenStore) buildKey(userID uint) string {
	return refreshTokenPrefix + strconv.FormatUint(uint64(userID), 10)
}
