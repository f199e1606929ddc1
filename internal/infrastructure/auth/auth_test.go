package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0, 0)

	pair, err := svc.Generate("usr_abc123", 777000, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(DefaultAccessTTL.Seconds()), pair.ExpiresIn)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_abc123", claims.UserSID)
	assert.Equal(t, int64(777000), claims.TelegramID)
	assert.Equal(t, authorization.RoleAdvertiser, claims.Role)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestJWTService_AdminGetsShorterAccess(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0, 0)

	pair, err := svc.Generate("usr_adm", 1, authorization.RoleAdmin, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultAdminAccessTTL.Seconds()), pair.ExpiresIn)

	// A secondary admin role triggers the shorter window too.
	pair, err = svc.Generate("usr_dual", 2, authorization.RoleBotOwner,
		[]authorization.UserRole{authorization.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultAdminAccessTTL.Seconds()), pair.ExpiresIn)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", 0, 0, 0)
	other := NewJWTService("secret-b", 0, 0, 0)

	pair, err := svc.Generate("usr_abc", 1, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)

	_, err = other.Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RefreshRequiresRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0, 0)

	pair, err := svc.Generate("usr_abc", 1, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err, "access token must not refresh")

	rotated, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	claims, err := svc.VerifyAccess(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_abc", claims.UserSID)
}

func TestJWTService_AccessTokenRejectedWhereRefreshExpected(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0, 0)

	pair, err := svc.Generate("usr_abc", 1, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestBotKeyService(t *testing.T) {
	svc := NewBotKeyService("bot-key-secret")

	t.Run("generate and verify round trip", func(t *testing.T) {
		key, hash, err := svc.Generate("bot_abc", "usr_owner", 7000000001, "quiz_bot")
		require.NoError(t, err)
		require.NotEmpty(t, key)
		assert.Len(t, hash, 64)
		assert.Equal(t, hash, svc.HashKey(key))

		claims, err := svc.Verify(key)
		require.NoError(t, err)
		assert.Equal(t, "bot_abc", claims.BotSID)
		assert.Equal(t, "usr_owner", claims.OwnerSID)
		assert.Equal(t, int64(7000000001), claims.TelegramBotID)
		assert.Equal(t, "quiz_bot", claims.Username)

		remaining := time.Until(claims.ExpiresAt.Time)
		assert.Greater(t, remaining, 364*24*time.Hour)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		key, _, err := svc.Generate("bot_abc", "usr_owner", 1, "b")
		require.NoError(t, err)

		_, err = NewBotKeyService("other-secret").Verify(key)
		assert.Error(t, err)
	})

	t.Run("tampered key fails", func(t *testing.T) {
		key, _, err := svc.Generate("bot_abc", "usr_owner", 1, "b")
		require.NoError(t, err)

		parts := strings.Split(key, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

		_, err = svc.Verify(tampered)
		assert.Error(t, err)
	})

	// Rotation depends on a fresh key never colliding with the one it
	// replaces, even when both are issued within the same second.
	t.Run("back to back keys are distinct", func(t *testing.T) {
		k1, h1, err := svc.Generate("bot_abc", "usr_owner", 1, "b")
		require.NoError(t, err)
		k2, h2, err := svc.Generate("bot_abc", "usr_owner", 1, "b")
		require.NoError(t, err)

		assert.NotEqual(t, k1, k2)
		assert.NotEqual(t, h1, h2)
	})
}

func TestJWTService_BackToBackTokensAreDistinct(t *testing.T) {
	svc := NewJWTService("test-secret", 0, 0, 0)

	p1, err := svc.Generate("usr_abc123", 777000, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)
	p2, err := svc.Generate("usr_abc123", 777000, authorization.RoleAdvertiser, nil)
	require.NoError(t, err)

	// refresh rotation compares token strings; identical tokens would let
	// a replayed refresh token pass as the rotated one
	assert.NotEqual(t, p1.AccessToken, p2.AccessToken)
	assert.NotEqual(t, p1.RefreshToken, p2.RefreshToken)
	assert.NotEqual(t, p1.AccessToken, p1.RefreshToken)
}

func TestTokenCipher(t *testing.T) {
	cipher, err := NewTokenCipher("a-strong-passphrase", "0123456789abcdef")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		token := "7000000001:AAFxq_example_bot_token_value"

		encrypted, err := cipher.Encrypt(token)
		require.NoError(t, err)
		assert.NotEqual(t, token, encrypted)

		decrypted, err := cipher.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, token, decrypted)
	})

	t.Run("deterministic for stable storage", func(t *testing.T) {
		a, err := cipher.Encrypt("same-token")
		require.NoError(t, err)
		b, err := cipher.Encrypt("same-token")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("rejects malformed iv", func(t *testing.T) {
		_, err := NewTokenCipher("pass", "tooshort")
		assert.Error(t, err)

		_, err = NewTokenCipher("", "0123456789abcdef")
		assert.Error(t, err)
	})

	t.Run("rejects garbage ciphertext", func(t *testing.T) {
		_, err := cipher.Decrypt("not-base64!!!")
		assert.Error(t, err)

		_, err = cipher.Decrypt("YWJj")
		assert.Error(t, err, "non-block-aligned input must fail")
	})
}
