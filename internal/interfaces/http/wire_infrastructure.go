package http

import (
	"time"

	"github.com/redis/go-redis/v9"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/email"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/permission"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/pubsub"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	infraTelegram "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	sharedDB "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/services/markdown"
)

// repositories groups all persistence gateways. Everything is backed by the
// same gorm handle, so cross-aggregate transactions share one session.
type repositories struct {
	user           *repository.UserRepository
	bot            *repository.BotRepository
	ad             *repository.AdRepository
	transaction    *repository.TransactionRepository
	reconciliation *repository.ReconciliationRepository
	impression     *repository.ImpressionRepository
	click          *repository.ClickRepository
	botUser        *repository.BotUserRepository
	tier           *repository.PricingTierRepository
	setting        *repository.PlatformSettingRepository
	withdraw       *repository.WithdrawRequestRepository
	wallet         *repository.WalletRepository
	ledger         *repository.LedgerRepository
	audit          *repository.AuditLogRepository
}

// initInfrastructure builds everything below the application layer: redis,
// repositories, caches, crypto services and the notification transports.
func (c *Container) initInfrastructure() error {
	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})

	c.repos = &repositories{
		user:           repository.NewUserRepository(c.db),
		bot:            repository.NewBotRepository(c.db),
		ad:             repository.NewAdRepository(c.db),
		transaction:    repository.NewTransactionRepository(c.db),
		reconciliation: repository.NewReconciliationRepository(c.db),
		impression:     repository.NewImpressionRepository(c.db),
		click:          repository.NewClickRepository(c.db),
		botUser:        repository.NewBotUserRepository(c.db),
		tier:           repository.NewPricingTierRepository(c.db),
		setting:        repository.NewPlatformSettingRepository(c.db),
		withdraw:       repository.NewWithdrawRequestRepository(c.db),
		wallet:         repository.NewWalletRepository(c.db),
		ledger:         repository.NewLedgerRepository(c.db),
		audit:          repository.NewAuditLogRepository(c.db),
	}

	c.freqGate = cache.NewFrequencyGate(c.redis)
	c.inflightLatch = cache.NewInflightLatch(c.redis)
	c.requestCache = cache.NewAdRequestCache(c.redis)
	c.settingsCache = cache.NewSettingsCache(c.redis)
	c.refreshTokens = cache.NewRefreshTokenStore(c.redis)
	c.loginSessions = cache.NewLoginSessionStore(c.redis)

	c.txMgr = sharedDB.NewTransactionManager(c.db)

	jwtCfg := c.cfg.Auth.JWT
	c.jwtSvc = infraAuth.NewJWTService(
		jwtCfg.Secret,
		time.Duration(jwtCfg.AccessExpHours)*time.Hour,
		time.Duration(jwtCfg.AdminAccessExpHours)*time.Hour,
		time.Duration(jwtCfg.RefreshExpDays)*24*time.Hour,
	)
	c.botKeys = infraAuth.NewBotKeyService(jwtCfg.Secret)

	cipher, err := infraAuth.NewTokenCipher(c.cfg.Crypto.EncryptionKey, c.cfg.Crypto.EncryptionIV)
	if err != nil {
		return err
	}
	c.tokenCipher = cipher

	c.markdownSvc = markdown.NewMarkdownService()
	c.emailManager = email.NewManager(&c.cfg.Email, c.log)

	if c.cfg.Telegram.Enabled && c.cfg.Telegram.BotToken != "" {
		api, err := infraTelegram.NewBotAPI(&c.cfg.Telegram)
		if err != nil {
			return err
		}
		c.botAPI = api
		c.notifier = infraTelegram.NewNotifier(api, c.log)
	}

	c.dispatcher = appNotification.NewDispatcher(c.notifier, c.emailManager, c.log)

	c.settingBus = pubsub.NewRedisSettingEventBus(c.redis, c.log)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return err
	}
	if err := permission.InitAllPermissions(enforcer, c.log); err != nil {
		return err
	}
	c.enforcer = enforcer

	return nil
}
