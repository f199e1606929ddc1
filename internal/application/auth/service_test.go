package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type authFixture struct {
	svc      *Service
	userRepo user.Repository
	mr       *miniredis.Miniredis
}

func setupAuth(t *testing.T) *authFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateUserTables(gdb))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	userRepo := repository.NewUserRepository(gdb)
	svc := NewService(
		userRepo,
		cache.NewLoginSessionStore(client),
		cache.NewRefreshTokenStore(client),
		infraAuth.NewJWTService("test-secret", 0, 0, 0),
		"akhmads_login_bot",
		logger.NewLogger(),
	)
	return &authFixture{svc: svc, userRepo: userRepo, mr: mr}
}

func tgAccount(id int64) telegram.TelegramAccount {
	return telegram.TelegramAccount{
		TelegramID:   id,
		Username:     "new_user",
		FirstName:    "New",
		LastName:     "User",
		LanguageCode: "ru",
	}
}

func TestInitiateLogin_FourCodesOneCorrect(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	init, err := f.svc.InitiateLogin(ctx, "203.0.113.7", "Mozilla/5.0")
	require.NoError(t, err)

	assert.NotEmpty(t, init.Token)
	assert.Equal(t, "https://t.me/akhmads_login_bot?start="+init.Token, init.DeepLink)
	require.Len(t, init.Codes, 4)
	assert.Contains(t, init.Codes, init.Code)
	seen := map[string]bool{}
	for _, c := range init.Codes {
		assert.Len(t, c, 4)
		assert.False(t, seen[c], "codes must be distinct")
		seen[c] = true
	}

	codes, err := f.svc.SessionCodes(ctx, init.Token)
	require.NoError(t, err)
	assert.Equal(t, init.Codes, codes)
}

func TestSubmitCode_AuthorizesOnceAndIssuesTokens(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)

	// a wrong pick rejects but leaves the session open
	var wrong string
	for _, c := range init.Codes {
		if c != init.Code {
			wrong = c
			break
		}
	}
	result, err := f.svc.SubmitCode(ctx, init.Token, tgAccount(600100), wrong)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultWrongCode, result)

	status, err := f.svc.Status(ctx, init.Token)
	require.NoError(t, err)
	assert.False(t, status.Authorized)

	// correct pick authorizes, creates the account, and stages tokens
	result, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600100), init.Code)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultAuthorized, result)

	// second correct submission is refused
	result, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600100), init.Code)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultConsumed, result)

	status, err = f.svc.Status(ctx, init.Token)
	require.NoError(t, err)
	require.True(t, status.Authorized)
	require.NotNil(t, status.Tokens)
	assert.NotEmpty(t, status.Tokens.AccessToken)
	assert.NotEmpty(t, status.Tokens.RefreshToken)
	require.NotNil(t, status.User)
	assert.Equal(t, int64(600100), status.User.TelegramID())
	assert.Equal(t, "ru", status.User.Locale())

	// the hand-off is one-shot; the session is gone afterwards
	_, err = f.svc.Status(ctx, init.Token)
	assert.Error(t, err)
}

func TestSubmitCode_UnknownTokenAndExpiry(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	result, err := f.svc.SubmitCode(ctx, "no-such-token", tgAccount(600200), "1234")
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultNotFound, result)

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)
	f.mr.FastForward(cache.LoginSessionTTL + 1)

	result, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600200), init.Code)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultNotFound, result)
}

func TestSubmitCode_BannedAccount(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	u, err := user.NewUser(600300, "Banned", "", "banned_user", "en")
	require.NoError(t, err)
	require.NoError(t, u.Ban("fraud"))
	require.NoError(t, f.userRepo.Create(ctx, u))

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)

	result, err := f.svc.SubmitCode(ctx, init.Token, tgAccount(600300), init.Code)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultBanned, result)

	status, err := f.svc.Status(ctx, init.Token)
	require.NoError(t, err)
	assert.False(t, status.Authorized)
}

func TestSubmitCode_ExistingAccountRefreshesProfile(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	u, err := user.NewUser(600400, "Old", "Name", "old_handle", "en")
	require.NoError(t, err)
	require.NoError(t, f.userRepo.Create(ctx, u))

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)
	account := telegram.TelegramAccount{
		TelegramID: 600400, Username: "fresh_handle", FirstName: "Fresh", LanguageCode: "uz",
	}
	result, err := f.svc.SubmitCode(ctx, init.Token, account, init.Code)
	require.NoError(t, err)
	assert.Equal(t, telegram.CodeResultAuthorized, result)

	reloaded, err := f.userRepo.GetByTelegramID(ctx, 600400)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", reloaded.FirstName())
	assert.Equal(t, "fresh_handle", reloaded.Username())
	assert.NotNil(t, reloaded.LastLoginAt())
	// locale changes only through explicit preference, not login
	assert.Equal(t, "en", reloaded.Locale())
}

func TestRefresh_RotatesAndBlocksReplay(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)
	_, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600500), init.Code)
	require.NoError(t, err)
	status, err := f.svc.Status(ctx, init.Token)
	require.NoError(t, err)
	original := status.Tokens.RefreshToken

	pair, u, err := f.svc.Refresh(ctx, original)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(600500), u.TelegramID())

	// the rotated-out token still has a valid signature but fails the pin
	_, _, err = f.svc.Refresh(ctx, original)
	assert.Error(t, err)

	// the fresh one keeps working
	_, _, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

func TestLogout_EndsRefreshChain(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)
	_, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600600), init.Code)
	require.NoError(t, err)
	status, err := f.svc.Status(ctx, init.Token)
	require.NoError(t, err)

	u, err := f.userRepo.GetByTelegramID(ctx, 600600)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx, u.ID()))

	_, _, err = f.svc.Refresh(ctx, status.Tokens.RefreshToken)
	assert.Error(t, err)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()

	init, err := f.svc.InitiateLogin(ctx, "", "")
	require.NoError(t, err)
	_, err = f.svc.SubmitCode(ctx, init.Token, tgAccount(600700), init.Code)
	require.NoError(t, err)
	status, err := f.svc.Status(ctx, init.Token)
	require.NoError(t, err)

	_, _, err = f.svc.Refresh(ctx, status.Tokens.AccessToken)
	assert.Error(t, err)
}
