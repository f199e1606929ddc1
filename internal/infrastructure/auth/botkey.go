package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

// BotKeyTTL is the lifetime of an issued bot API key. Owners rotate keys
// well before this; the expiry is a backstop for forgotten bots.
const BotKeyTTL = 365 * 24 * time.Hour

// BotKeyClaims identifies the bot presenting an X-Api-Key token. The SIDs
// are the opaque external identifiers, never database PKs.
type BotKeyClaims struct {
	BotSID        string `json:"botId"`
	OwnerSID      string `json:"ownerId"`
	TelegramBotID int64  `json:"telegramBotId"`
	Username      string `json:"username"`
	jwt.RegisteredClaims
}

// BotKeyService issues and verifies bot API keys. The key itself is a signed
// JWT; only its SHA-256 hash is stored on the bot row, so a database leak
// does not expose usable keys. Signature verification alone never authorizes
// a request: callers re-fetch the bot by hash and re-check status, pause and
// revocation at call time.
type BotKeyService struct {
	secret []byte
}

// NewBotKeyService creates a bot key service signing with the given secret.
func NewBotKeyService(secret string) *BotKeyService {
	return &BotKeyService{secret: []byte(secret)}
}

// Generate issues a fresh API key and returns it with its storage hash.
func (s *BotKeyService) Generate(botSID, ownerSID string, telegramBotID int64, username string) (plainKey, keyHash string, err error) {
	now := biztime.NowUTC()
	claims := &BotKeyClaims{
		BotSID:        botSID,
		OwnerSID:      ownerSID,
		TelegramBotID: telegramBotID,
		Username:      username,
		RegisteredClaims: jwt.RegisteredClaims{
			// random jti: rotating a key must never reissue the same
			// token (and thus the same stored hash)
			ID:        uuid.NewString(),
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(BotKeyTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	plainKey, err = token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign bot api key: %w", err)
	}

	return plainKey, s.HashKey(plainKey), nil
}

// Verify parses the key and returns its claims. A valid signature is the
// first gate only; the caller must still load the bot and check its state.
func (s *BotKeyService) Verify(key string) (*BotKeyClaims, error) {
	token, err := jwt.ParseWithClaims(key, &BotKeyClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot api key: %w", err)
	}

	if claims, ok := token.Claims.(*BotKeyClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid bot api key")
}

// HashKey computes the storage hash for an API key.
func (s *BotKeyService) HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
