// Package worker implements the `worker` CLI command: it runs the background
// sweeps (ad lifecycle, stale transaction expiry) without serving HTTP, so
// deployments can keep schedulers off the API replicas.
package worker

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	adUC "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/ad/usecases"
	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	appSetting "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/setting"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/cache"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/config"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/database"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/email"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/pubsub"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/repository"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/scheduler"
	infraTelegram "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
	sharedDB "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background schedulers",
		Long:  `Run the ad lifecycle and transaction expiry sweeps standalone, without the HTTP server.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db := database.Get()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	userRepo := repository.NewUserRepository(db)
	adRepo := repository.NewAdRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	reconRepo := repository.NewReconciliationRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	settingRepo := repository.NewPlatformSettingRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	txMgr := sharedDB.NewTransactionManager(db)

	var notifier *infraTelegram.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		api, err := infraTelegram.NewBotAPI(&cfg.Telegram)
		if err != nil {
			return fmt.Errorf("failed to build telegram client: %w", err)
		}
		notifier = infraTelegram.NewNotifier(api, log)
	}
	dispatcher := appNotification.NewDispatcher(notifier, email.NewManager(&cfg.Email, log), log)

	settingBus := pubsub.NewRedisSettingEventBus(rdb, log)
	settingSvc, err := appSetting.NewService(settingRepo, cache.NewSettingsCache(rdb), settingBus, auditRepo, log)
	if err != nil {
		return fmt.Errorf("failed to build settings service: %w", err)
	}

	walletSvc := appWallet.NewService(walletRepo, ledgerRepo, txMgr, log)
	paymentSvc := appPayment.NewService(
		txRepo, reconRepo, userRepo, walletSvc, settingSvc, txMgr, dispatcher, log,
	)

	txScheduler := scheduler.NewTransactionScheduler(
		scheduler.BatchJobFunc(paymentSvc.ExpireStalePending), log,
	)
	adScheduler := scheduler.NewAdLifecycleScheduler(
		adUC.NewActivateDueAdsJob(adRepo, log),
		adUC.NewCompleteExpiredAdsJob(adRepo, userRepo, walletSvc, txMgr, dispatcher, log),
		log,
	)

	ctx := cmd.Context()
	txScheduler.Start(ctx)
	adScheduler.Start(ctx)
	log.Infow("schedulers running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infow("shutting down worker", "signal", sig.String())

	adScheduler.Stop()
	txScheduler.Stop()

	log.Infow("worker exited gracefully")
	return nil
}
