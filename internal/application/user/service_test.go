package user

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	payvo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/migrations"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type userFixture struct {
	svc       *Service
	userRepo  user.Repository
	txRepo    payment.Repository
	auditRepo moderation.AuditLogRepository
	walletSvc *appWallet.Service
	adminID   uint
}

func setupUserService(t *testing.T) *userFixture {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateUserTables(gdb))
	require.NoError(t, migrations.MigrateAdTables(gdb))
	require.NoError(t, migrations.MigrateBotTables(gdb))
	require.NoError(t, migrations.MigrateWalletTables(gdb))
	require.NoError(t, migrations.MigratePaymentTables(gdb))
	require.NoError(t, migrations.MigrateSettingTables(gdb))

	log := logger.NewLogger()
	txMgr := db.NewTransactionManager(gdb)
	userRepo := repository.NewUserRepository(gdb)
	txRepo := repository.NewTransactionRepository(gdb)
	auditRepo := repository.NewAuditLogRepository(gdb)
	walletSvc := appWallet.NewService(
		repository.NewWalletRepository(gdb),
		repository.NewLedgerRepository(gdb),
		txMgr,
		log,
	)

	svc := NewService(
		userRepo,
		repository.NewAdRepository(gdb),
		repository.NewBotRepository(gdb),
		txRepo,
		auditRepo,
		walletSvc,
		txMgr,
		log,
	)

	admin, err := user.NewUser(800001, "Admin", "", "platform_admin", "en")
	require.NoError(t, err)
	require.NoError(t, admin.GrantRole(authorization.RoleAdmin))
	require.NoError(t, userRepo.Create(context.Background(), admin))

	return &userFixture{
		svc: svc, userRepo: userRepo, txRepo: txRepo,
		auditRepo: auditRepo, walletSvc: walletSvc, adminID: admin.ID(),
	}
}

func (f *userFixture) seedUser(t *testing.T, telegramID int64) *user.User {
	u, err := user.NewUser(telegramID, "Member", "", "member_user", "en")
	require.NoError(t, err)
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func TestSetLocale(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800100)

	updated, err := f.svc.SetLocale(ctx, u.ID(), "uz")
	require.NoError(t, err)
	assert.Equal(t, "uz", updated.Locale())

	reloaded, err := f.svc.Profile(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "uz", reloaded.Locale())
}

func TestGetDashboard_SummarizesWallet(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800200)

	_, err := f.svc.walletSvc.Credit(ctx, u.ID(), decimal.NewFromInt(40), appWallet.NoRef, "deposit")
	require.NoError(t, err)
	_, err = f.svc.walletSvc.CreditEarnings(ctx, u.ID(), decimal.NewFromInt(5), appWallet.NoRef, "earnings")
	require.NoError(t, err)

	d, err := f.svc.GetDashboard(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "45", d.Available.String())
	assert.True(t, d.Reserved.IsZero())
	assert.Equal(t, "5", d.TotalEarned.String())
	assert.Equal(t, int64(0), d.AdCount)
	assert.Equal(t, 0, d.BotCount)
}

func TestBanUnban_WritesAuditTrail(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800300)

	banned, err := f.svc.Ban(ctx, f.adminID, u.SID(), "fraudulent deposits")
	require.NoError(t, err)
	assert.True(t, banned.IsBanned())
	assert.False(t, banned.CanAuthenticate())
	assert.Equal(t, "fraudulent deposits", banned.BanReason())

	// double ban errors
	_, err = f.svc.Ban(ctx, f.adminID, u.SID(), "again")
	assert.Error(t, err)

	unbanned, err := f.svc.Unban(ctx, f.adminID, u.SID())
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned())
	assert.True(t, unbanned.CanAuthenticate())

	trail, err := f.auditRepo.ListByEntity(ctx, "USER", u.SID(), 10)
	require.NoError(t, err)
	require.Len(t, trail, 2)
}

func TestRoleGrants(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800400)

	granted, err := f.svc.GrantRole(ctx, f.adminID, u.SID(), "bot_owner")
	require.NoError(t, err)
	assert.True(t, granted.HasRole(authorization.RoleBotOwner))

	_, err = f.svc.GrantRole(ctx, f.adminID, u.SID(), "janitor")
	assert.Error(t, err)

	revoked, err := f.svc.RevokeRole(ctx, f.adminID, u.SID(), "BOT_OWNER")
	require.NoError(t, err)
	assert.False(t, revoked.HasRole(authorization.RoleBotOwner))
}

func TestAdjustBalance_PairsWalletMoveWithTransaction(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800500)

	_, err := f.walletSvc.Credit(ctx, u.ID(), decimal.NewFromInt(20), appWallet.NoRef, "deposit")
	require.NoError(t, err)

	_, err = f.svc.AdjustBalance(ctx, f.adminID, u.SID(), decimal.NewFromInt(-7), "chargeback correction")
	require.NoError(t, err)

	w, err := f.walletSvc.GetWallet(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "13", w.Available().String())

	uid := u.ID()
	legs, _, err := f.txRepo.List(ctx, payment.ListFilter{UserID: &uid})
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, payvo.TransactionTypeAdjustment, legs[0].Type())
	assert.True(t, legs[0].Status().IsSuccess())

	trail, err := f.auditRepo.ListByEntity(ctx, "USER", u.SID(), 10)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, moderation.ActionAdjustBalance, trail[0].Action())

	result, err := f.walletSvc.VerifyBalance(ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, result.Clean)
}

func TestAdjustBalance_Validation(t *testing.T) {
	f := setupUserService(t)
	ctx := context.Background()
	u := f.seedUser(t, 800600)

	_, err := f.svc.AdjustBalance(ctx, f.adminID, u.SID(), decimal.Zero, "nothing")
	assert.Error(t, err)
	_, err = f.svc.AdjustBalance(ctx, f.adminID, u.SID(), decimal.NewFromInt(5), "  ")
	assert.Error(t, err)

	// overdraw rolls back: no wallet move, no transaction row
	_, err = f.svc.AdjustBalance(ctx, f.adminID, u.SID(), decimal.NewFromInt(-50), "overdraw")
	assert.Error(t, err)
	uid := u.ID()
	legs, _, err := f.txRepo.List(ctx, payment.ListFilter{UserID: &uid})
	require.NoError(t, err)
	assert.Empty(t, legs)
}
