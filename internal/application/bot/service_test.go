package bot

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	botvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

const testBotToken = "7012345678:AAF3kQ9rX2mVtZ8wLpYcN4dHgB1jUoE5sTi"

type botFixture struct {
	svc     *Service
	botRepo bot.Repository
	keys    *infraAuth.BotKeyService
	cipher  *infraAuth.TokenCipher
	impRepo delivery.ImpressionRepository
	buRepo  delivery.BotUserRepository
	clicks  delivery.ClickRepository
	ownerID uint
}

func setupBotService(t *testing.T) *botFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateUserTables(gdb))
	require.NoError(t, migrations.MigrateBotTables(gdb))
	require.NoError(t, migrations.MigrateDeliveryTables(gdb))

	cipher, err := infraAuth.NewTokenCipher("test-passphrase", "0123456789abcdef")
	require.NoError(t, err)
	keys := infraAuth.NewBotKeyService("bot-key-secret")

	log := logger.NewLogger()
	botRepo := repository.NewBotRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	impRepo := repository.NewImpressionRepository(gdb)
	clickRepo := repository.NewClickRepository(gdb)
	buRepo := repository.NewBotUserRepository(gdb)

	svc := NewService(
		botRepo, userRepo, impRepo, clickRepo, buRepo,
		cipher, keys, db.NewTransactionManager(gdb), nil, log,
	)

	owner, err := user.NewUser(700100, "Owner", "", "bot_owner", "en")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), owner))

	return &botFixture{
		svc: svc, botRepo: botRepo, keys: keys, cipher: cipher,
		impRepo: impRepo, buRepo: buRepo, clicks: clickRepo,
		ownerID: owner.ID(),
	}
}

func (f *botFixture) register(t *testing.T) *RegisterResult {
	res, err := f.svc.Register(context.Background(), RegisterCommand{
		OwnerID:  f.ownerID,
		Token:    testBotToken,
		Username: "@shop_helper_bot",
		Title:    "Shop Helper",
		Category: "Shopping",
		Language: "EN",
	})
	require.NoError(t, err)
	return res
}

func TestRegister_PendingWithFinalCredential(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	b := res.Bot

	assert.Equal(t, botvo.BotStatusPending, b.Status())
	assert.Equal(t, "shop_helper_bot", b.Username())
	assert.Equal(t, int64(7012345678), b.TelegramBotID())
	assert.Equal(t, "shopping", b.Category())
	assert.Equal(t, "en", b.Language())
	assert.NotEmpty(t, res.APIKey)

	// the stored hash matches the issued key and nothing else
	stored, err := f.botRepo.GetByAPIKeyHash(ctx, f.keys.HashKey(res.APIKey))
	require.NoError(t, err)
	assert.Equal(t, b.SID(), stored.SID())

	// the key's claims point back at this bot
	claims, err := f.keys.Verify(res.APIKey)
	require.NoError(t, err)
	assert.Equal(t, b.SID(), claims.BotSID)
	assert.Equal(t, int64(7012345678), claims.TelegramBotID)

	// the token round-trips through the cipher, and is not stored plain
	assert.NotEqual(t, testBotToken, stored.TokenEncrypted())
	plain, err := f.cipher.Decrypt(stored.TokenEncrypted())
	require.NoError(t, err)
	assert.Equal(t, testBotToken, plain)
}

func TestRegister_RejectsDuplicateAndBadToken(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	f.register(t)

	_, err := f.svc.Register(ctx, RegisterCommand{
		OwnerID: f.ownerID, Token: testBotToken, Username: "other_bot",
	})
	assert.ErrorIs(t, err, bot.ErrTelegramBotIDTaken)

	for _, token := range []string{"", "no-colon-here", "abc:secret", "-5:secret", "12345:"} {
		_, err := f.svc.Register(ctx, RegisterCommand{
			OwnerID: f.ownerID, Token: token, Username: "x_bot",
		})
		assert.ErrorIs(t, err, ErrInvalidBotToken, "token %q", token)
	}
}

func TestRotateKey_InvalidatesOldKey(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	oldHash := f.keys.HashKey(res.APIKey)

	rotated, err := f.svc.RotateKey(ctx, f.ownerID, res.Bot.SID())
	require.NoError(t, err)
	assert.NotEqual(t, res.APIKey, rotated.APIKey)

	_, err = f.botRepo.GetByAPIKeyHash(ctx, oldHash)
	assert.ErrorIs(t, err, bot.ErrBotNotFound)

	found, err := f.botRepo.GetByAPIKeyHash(ctx, f.keys.HashKey(rotated.APIKey))
	require.NoError(t, err)
	assert.Equal(t, res.Bot.SID(), found.SID())
	assert.False(t, found.IsAPIKeyRevoked())
}

func TestRevokeKey_ThenRotateRestores(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)

	revoked, err := f.svc.RevokeKey(ctx, f.ownerID, res.Bot.SID())
	require.NoError(t, err)
	assert.True(t, revoked.IsAPIKeyRevoked())

	_, err = f.svc.RevokeKey(ctx, f.ownerID, res.Bot.SID())
	assert.ErrorIs(t, err, bot.ErrAPIKeyAlreadyRevoked)

	rotated, err := f.svc.RotateKey(ctx, f.ownerID, res.Bot.SID())
	require.NoError(t, err)
	assert.False(t, rotated.Bot.IsAPIKeyRevoked())
}

func TestPauseResume_RequireActiveStatus(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	sid := res.Bot.SID()

	// pending bots cannot pause
	_, err := f.svc.Pause(ctx, f.ownerID, sid)
	assert.ErrorIs(t, err, bot.ErrBotNotActive)

	b, err := f.botRepo.GetBySID(ctx, sid)
	require.NoError(t, err)
	require.NoError(t, b.Approve())
	require.NoError(t, f.botRepo.Update(ctx, b))

	paused, err := f.svc.Pause(ctx, f.ownerID, sid)
	require.NoError(t, err)
	assert.True(t, paused.IsPaused())
	assert.False(t, paused.CanServe())

	_, err = f.svc.Pause(ctx, f.ownerID, sid)
	assert.ErrorIs(t, err, bot.ErrBotAlreadyPaused)

	resumed, err := f.svc.Resume(ctx, f.ownerID, sid)
	require.NoError(t, err)
	assert.False(t, resumed.IsPaused())
	assert.True(t, resumed.CanServe())
}

func TestOwnerControls_UpdatePreferences(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	sid := res.Bot.SID()

	updated, err := f.svc.UpdateProfile(ctx, f.ownerID, sid, "Shop Helper Pro", "deals bot", "shopping", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Shop Helper Pro", updated.Title())
	assert.Equal(t, "ru", updated.Language())

	updated, err = f.svc.SetBlockedCategories(ctx, f.ownerID, sid, []string{"Gambling", "gambling", " crypto "})
	require.NoError(t, err)
	assert.Equal(t, []string{"gambling", "crypto"}, updated.BlockedCategories())
	assert.False(t, updated.CategoryAllowed("gambling"))
	assert.True(t, updated.CategoryAllowed("education"))

	_, err = f.svc.SetFrequency(ctx, f.ownerID, sid, 10)
	assert.ErrorIs(t, err, bot.ErrFrequencyTooLow)

	updated, err = f.svc.SetFrequency(ctx, f.ownerID, sid, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, updated.FrequencyMinutes())
}

func TestOwnership_ForeignBotReadsAsNotFound(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	stranger := f.ownerID + 100

	_, err := f.svc.Get(ctx, res.Bot.SID(), stranger, false)
	assert.ErrorIs(t, err, bot.ErrBotNotFound)
	_, err = f.svc.RotateKey(ctx, stranger, res.Bot.SID())
	assert.ErrorIs(t, err, bot.ErrBotNotFound)
	_, err = f.svc.Pause(ctx, stranger, res.Bot.SID())
	assert.ErrorIs(t, err, bot.ErrBotNotFound)

	// admins read anything
	_, err = f.svc.Get(ctx, res.Bot.SID(), stranger, true)
	assert.NoError(t, err)
}

func TestStats_AggregatesDeliveryAndAudience(t *testing.T) {
	f := setupBotService(t)
	ctx := context.Background()

	res := f.register(t)
	botID := res.Bot.ID()

	profile := delivery.TelegramProfile{FirstName: "Viewer", LanguageCode: "en"}
	for i, viewer := range []int64{9001, 9002, 9003} {
		imp, err := delivery.NewImpression(
			uint(50+i), botID, viewer, profile,
			decimal.RequireFromString("0.005"),
			decimal.RequireFromString("0.001"),
			decimal.RequireFromString("0.004"),
		)
		require.NoError(t, err)
		require.NoError(t, f.impRepo.Create(ctx, imp))

		bu, err := delivery.NewBotUser(botID, viewer, profile)
		require.NoError(t, err)
		require.NoError(t, f.buRepo.Upsert(ctx, bu))
	}
	click, err := delivery.NewClickEvent(50, botID, 9001, 0, "https://example.com", "198.51.100.4")
	require.NoError(t, err)
	require.NoError(t, f.clicks.Create(ctx, click))

	stats, err := f.svc.Stats(ctx, res.Bot.SID(), f.ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Impressions)
	assert.Equal(t, int64(1), stats.Clicks)
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("0.015")), "revenue %s", stats.Revenue)
	assert.True(t, stats.OwnerEarnings.Equal(decimal.RequireFromString("0.012")), "earnings %s", stats.OwnerEarnings)
	assert.True(t, stats.PlatformFee.Equal(decimal.RequireFromString("0.003")), "fee %s", stats.PlatformFee)
	assert.Equal(t, int64(3), stats.AudienceTotal)
	assert.Equal(t, int64(3), stats.AudienceActive)
}
