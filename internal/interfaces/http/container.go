// Package http assembles the HTTP surface: the dependency container, the
// gin router and the background services that ride along with the server.
package http

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adUC "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/ad/usecases"
	appAdserver "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/adserver"
	appAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/auth"
	appBot "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/bot"
	appModeration "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/moderation"
	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	appPermission "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/permission"
	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	appSetting "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/setting"
	appUser "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/user"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	appWithdrawal "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/withdrawal"
	infraAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/auth"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/config"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/email"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/permission"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/pubsub"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/scheduler"
	infraTelegram "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers"
	adminHandlers "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/handlers/admin"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/interfaces/http/middleware"
	sharedDB "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/services/markdown"
)

// Container wires the whole backend together: repositories, caches,
// application services, handlers, routes and the background sweeps. It owns
// everything it creates and tears it down again in Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories

	// Caches
	freqGate      *cache.FrequencyGate
	inflightLatch *cache.InflightLatch
	requestCache  *cache.AdRequestCache
	settingsCache *cache.SettingsCache
	refreshTokens *cache.RefreshTokenStore
	loginSessions *cache.LoginSessionStore

	// Infrastructure services
	txMgr        *sharedDB.TransactionManager
	jwtSvc       *infraAuth.JWTService
	botKeys      *infraAuth.BotKeyService
	tokenCipher  *infraAuth.TokenCipher
	markdownSvc  markdown.MarkdownService
	emailManager *email.Manager
	enforcer     *permission.Enforcer
	settingBus   *pubsub.RedisSettingEventBus

	// Telegram
	botAPI   *tgbotapi.Bot
	notifier *infraTelegram.Notifier
	loginBot *infraTelegram.LoginBot

	dispatcher *appNotification.Dispatcher

	// Application services
	walletSvc     *appWallet.Service
	paymentSvc    *appPayment.Service
	withdrawalSvc *appWithdrawal.Service
	userSvc       *appUser.Service
	authSvc       *appAuth.Service
	moderationSvc *appModeration.Service
	settingSvc    *appSetting.Service
	botSvc        *appBot.Service
	pricingSvc    *appPricing.Service
	permissionSvc *appPermission.Service
	adServerSvc   *appAdserver.Service
	clickTracker  *appAdserver.ClickTracker

	// Ad campaign use cases
	adUCs *adUseCases

	// Payment gateway adapters
	paymeAdapter     *appPayment.PaymeAdapter
	clickAdapter     *appPayment.ClickAdapter
	cryptopayAdapter *appPayment.CryptopayAdapter

	// Middlewares
	authMiddleware   *middleware.AuthMiddleware
	botKeyMiddleware *middleware.BotKeyMiddleware
	permMiddleware   *middleware.PermissionMiddleware
	rateLimiter      *middleware.RateLimiter

	// Handlers
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	walletHandler     *handlers.WalletHandler
	adHandler         *handlers.AdHandler
	botHandler        *handlers.BotHandler
	adServerHandler   *handlers.AdServerHandler
	paymentHandler    *handlers.PaymentHandler
	webhookHandler    *handlers.WebhookHandler
	withdrawalHandler *handlers.WithdrawalHandler
	pricingHandler    *handlers.PricingHandler
	healthHandler     *handlers.HealthHandler

	adminUserHandler           *adminHandlers.UserHandler
	adminModerationHandler     *adminHandlers.ModerationHandler
	adminSettingHandler        *adminHandlers.SettingHandler
	adminTierHandler           *adminHandlers.TierHandler
	adminWithdrawalHandler     *adminHandlers.WithdrawalHandler
	adminReconciliationHandler *adminHandlers.ReconciliationHandler
	adminWalletHandler         *adminHandlers.WalletHandler
	adminCatalogHandler        *adminHandlers.CatalogHandler

	// Background sweeps
	txScheduler *scheduler.TransactionScheduler
	adScheduler *scheduler.AdLifecycleScheduler

	settingBusCancel   context.CancelFunc
	settingBusCancelMu sync.Mutex
}

// adUseCases groups the advertiser campaign use cases so the handler wiring
// stays readable.
type adUseCases struct {
	create  *adUC.CreateAdUseCase
	get     *adUC.GetAdUseCase
	list    *adUC.ListAdsUseCase
	update  *adUC.UpdateAdUseCase
	submit  *adUC.SubmitAdUseCase
	pause   *adUC.PauseAdUseCase
	resume  *adUC.ResumeAdUseCase
	cancel  *adUC.CancelAdUseCase
	archive *adUC.ArchiveAdUseCase

	activateDue     *adUC.ActivateDueAdsJob
	completeExpired *adUC.CompleteExpiredAdsJob
}

// NewContainer creates the container and wires every dependency. The sections
// run in dependency order: infrastructure first, then application services,
// then the HTTP layer.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	c.initHandlers()
	c.setupRoutes()

	return c, nil
}

// Engine exposes the configured gin engine for the HTTP server.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start seeds the platform settings, subscribes to cross-instance setting
// invalidation and launches the background sweeps and the login bot.
func (c *Container) Start(ctx context.Context) error {
	if err := c.settingSvc.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed platform settings: %w", err)
	}
	if err := c.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("load permission policy: %w", err)
	}

	busCtx, cancel := context.WithCancel(context.Background())
	c.settingBusCancelMu.Lock()
	c.settingBusCancel = cancel
	c.settingBusCancelMu.Unlock()
	go func() {
		if err := c.settingBus.Subscribe(busCtx, c.settingSvc.HandleSettingChange); err != nil && busCtx.Err() == nil {
			c.log.Errorw("setting event subscription terminated", "error", err)
		}
	}()

	c.txScheduler.Start(ctx)
	c.adScheduler.Start(ctx)

	if c.loginBot != nil {
		if err := c.loginBot.Start(); err != nil {
			return fmt.Errorf("start login bot: %w", err)
		}
	}

	c.log.Infow("background services started")
	return nil
}

// Shutdown stops the background services and closes the redis connection.
// Safe to call once, after the HTTP server has drained.
func (c *Container) Shutdown() {
	if c.loginBot != nil {
		c.loginBot.Stop()
	}
	c.adScheduler.Stop()
	c.txScheduler.Stop()

	c.settingBusCancelMu.Lock()
	if c.settingBusCancel != nil {
		c.settingBusCancel()
		c.settingBusCancel = nil
	}
	c.settingBusCancelMu.Unlock()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("closing redis client", "error", err)
		}
	}
	c.log.Infow("container shut down")
}
