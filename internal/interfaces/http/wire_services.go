package http

import (
	adUC "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/ad/usecases"
	appAdserver "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/adserver"
	appAuth "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/auth"
	appBot "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/bot"
	appModeration "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/moderation"
	appPayment "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/payment"
	appPermission "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/permission"
	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	appSetting "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/setting"
	appUser "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/user"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	appWithdrawal "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/withdrawal"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/scheduler"
	infraTelegram "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/telegram"
)

// initServices builds the application layer on top of the infrastructure
// section and wires the background sweeps.
func (c *Container) initServices() error {
	settingSvc, err := appSetting.NewService(c.repos.setting, c.settingsCache, c.settingBus, c.repos.audit, c.log)
	if err != nil {
		return err
	}
	c.settingSvc = settingSvc

	c.permissionSvc = appPermission.NewService(c.enforcer, c.log)

	c.walletSvc = appWallet.NewService(c.repos.wallet, c.repos.ledger, c.txMgr, c.log)

	c.paymentSvc = appPayment.NewService(
		c.repos.transaction, c.repos.reconciliation, c.repos.user,
		c.walletSvc, c.settingSvc, c.txMgr, c.dispatcher, c.log,
	)

	c.withdrawalSvc = appWithdrawal.NewService(
		c.repos.withdraw, c.repos.transaction, c.repos.user, c.repos.audit,
		c.walletSvc, c.settingSvc, c.txMgr, c.dispatcher, c.log,
	)

	c.userSvc = appUser.NewService(
		c.repos.user, c.repos.ad, c.repos.bot, c.repos.transaction, c.repos.audit,
		c.walletSvc, c.txMgr, c.log,
	)

	c.authSvc = appAuth.NewService(
		c.repos.user, c.loginSessions, c.refreshTokens, c.jwtSvc,
		c.cfg.Telegram.BotUsername, c.log,
	)

	// No external content safety service is wired; moderation runs purely on
	// human review.
	c.moderationSvc = appModeration.NewService(
		c.repos.ad, c.repos.bot, c.repos.user, c.repos.audit,
		c.walletSvc, nil, c.txMgr, c.dispatcher, c.log,
	)

	c.botSvc = appBot.NewService(
		c.repos.bot, c.repos.user, c.repos.impression, c.repos.click, c.repos.botUser,
		c.tokenCipher, c.botKeys, c.txMgr, c.dispatcher, c.log,
	)

	c.pricingSvc = appPricing.NewService(c.repos.tier, c.settingSvc, c.repos.audit, c.log)

	c.adServerSvc = appAdserver.NewService(
		c.repos.ad, c.repos.bot, c.repos.user, c.repos.impression, c.repos.botUser,
		c.walletSvc, c.settingSvc, c.freqGate, c.inflightLatch, c.requestCache,
		c.txMgr, c.dispatcher, c.markdownSvc, c.cfg.Server.BaseURL, c.log,
	)
	c.clickTracker = appAdserver.NewClickTracker(c.repos.ad, c.repos.bot, c.repos.click, c.log)

	c.adUCs = &adUseCases{
		create:  adUC.NewCreateAdUseCase(c.repos.ad, c.pricingSvc, c.log),
		get:     adUC.NewGetAdUseCase(c.repos.ad, c.log),
		list:    adUC.NewListAdsUseCase(c.repos.ad, c.log),
		update:  adUC.NewUpdateAdUseCase(c.repos.ad, c.pricingSvc, c.log),
		submit:  adUC.NewSubmitAdUseCase(c.repos.ad, c.repos.user, c.walletSvc, c.txMgr, c.dispatcher, c.log),
		pause:   adUC.NewPauseAdUseCase(c.repos.ad, c.log),
		resume:  adUC.NewResumeAdUseCase(c.repos.ad, c.log),
		cancel:  adUC.NewCancelAdUseCase(c.repos.ad, c.walletSvc, c.txMgr, c.log),
		archive: adUC.NewArchiveAdUseCase(c.repos.ad, c.log),

		activateDue: adUC.NewActivateDueAdsJob(c.repos.ad, c.log),
		completeExpired: adUC.NewCompleteExpiredAdsJob(
			c.repos.ad, c.repos.user, c.walletSvc, c.txMgr, c.dispatcher, c.log,
		),
	}

	conv, err := appPayment.NewAmountConverter(c.cfg.Payments.UsdUzsRate)
	if err != nil {
		return err
	}
	c.paymeAdapter = appPayment.NewPaymeAdapter(
		c.paymentSvc, conv, c.cfg.Payments.Payme.Key, c.cfg.Payments.Payme.TestKey, c.log,
	)
	c.clickAdapter = appPayment.NewClickAdapter(
		c.paymentSvc, conv, c.cfg.Payments.Click.ServiceID, c.cfg.Payments.Click.SecretKey, c.log,
	)
	c.cryptopayAdapter = appPayment.NewCryptopayAdapter(
		c.paymentSvc, c.cfg.Payments.Cryptopay.IPNSecret, c.log,
	)

	if c.botAPI != nil {
		c.loginBot = infraTelegram.NewLoginBot(c.botAPI, c.authSvc, c.log)
	}

	c.txScheduler = scheduler.NewTransactionScheduler(
		scheduler.BatchJobFunc(c.paymentSvc.ExpireStalePending), c.log,
	)
	c.adScheduler = scheduler.NewAdLifecycleScheduler(
		c.adUCs.activateDue, c.adUCs.completeExpired, c.log,
	)

	return nil
}
