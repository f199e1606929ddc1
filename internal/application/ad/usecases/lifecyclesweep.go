package usecases

import (
	"context"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// ActivateDueAdsJob moves SCHEDULED ads into RUNNING once their window opens.
// It is driven by the minute sweep; each run processes every due ad and
// reports how many it flipped.
type ActivateDueAdsJob struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewActivateDueAdsJob(adRepo ad.Repository, logger logger.Interface) *ActivateDueAdsJob {
	return &ActivateDueAdsJob{adRepo: adRepo, logger: logger}
}

func (j *ActivateDueAdsJob) Execute(ctx context.Context) (int, error) {
	due, err := j.adRepo.ListScheduledToStart(ctx, biztime.NowUTC())
	if err != nil {
		return 0, err
	}

	activated := 0
	for _, a := range due {
		if err := a.Start(); err != nil {
			j.logger.Warnw("skipping ad activation", "error", err, "ad_sid", a.SID())
			continue
		}
		if err := j.adRepo.Update(ctx, a); err != nil {
			j.logger.Errorw("failed to persist ad activation", "error", err, "ad_sid", a.SID())
			continue
		}
		activated++
	}
	return activated, nil
}

// CompleteExpiredAdsJob finishes RUNNING and PAUSED ads whose schedule window
// has closed. Any unspent budget goes back to the advertiser in the same
// transaction as the status flip.
type CompleteExpiredAdsJob struct {
	adRepo     ad.Repository
	userRepo   user.Repository
	walletSvc  *appWallet.Service
	txMgr      *db.TransactionManager
	dispatcher *appNotification.Dispatcher
	logger     logger.Interface
}

func NewCompleteExpiredAdsJob(
	adRepo ad.Repository,
	userRepo user.Repository,
	wallet *appWallet.Service,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *CompleteExpiredAdsJob {
	return &CompleteExpiredAdsJob{
		adRepo:     adRepo,
		userRepo:   userRepo,
		walletSvc:  wallet,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (j *CompleteExpiredAdsJob) Execute(ctx context.Context) (int, error) {
	expired, err := j.adRepo.ListRunningPastEnd(ctx, biztime.NowUTC())
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, a := range expired {
		if err := j.completeOne(ctx, a); err != nil {
			j.logger.Errorw("failed to complete expired ad", "error", err, "ad_sid", a.SID())
			continue
		}
		completed++
		j.notifyAdvertiser(ctx, a)
	}
	return completed, nil
}

func (j *CompleteExpiredAdsJob) completeOne(ctx context.Context, a *ad.Ad) error {
	return j.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.Complete(); err != nil {
			return err
		}

		if a.RemainingBudget().IsPositive() {
			_, err := j.walletSvc.ReturnBudget(txCtx, a.AdvertiserID(), a.RemainingBudget(),
				appWallet.AdRef(a.SID()), "Unspent budget returned on completion")
			if err != nil {
				return err
			}
		}

		return j.adRepo.Update(txCtx, a)
	})
}

func (j *CompleteExpiredAdsJob) notifyAdvertiser(ctx context.Context, a *ad.Ad) {
	if j.dispatcher == nil {
		return
	}
	owner, err := j.userRepo.GetByID(ctx, a.AdvertiserID())
	if err != nil {
		return
	}
	j.dispatcher.AdCompleted(
		appNotification.Recipient{TelegramID: owner.TelegramID(), Locale: owner.Locale()},
		appNotification.AdDisplayTitle(a.Text(), a.SID()),
		a.DeliveredImpressions(),
	)
}
