package usecases

import (
	"context"
	"fmt"

	appNotification "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/notification"
	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type SubmitAdCommand struct {
	AdSID        string
	AdvertiserID uint
}

// SubmitAdUseCase moves a priced draft into moderation and escrows its full
// budget in the same transaction. If the reserve fails the status change
// rolls back with it.
type SubmitAdUseCase struct {
	adRepo     ad.Repository
	userRepo   user.Repository
	walletSvc  *appWallet.Service
	txMgr      *db.TransactionManager
	dispatcher *appNotification.Dispatcher
	logger     logger.Interface
}

func NewSubmitAdUseCase(
	adRepo ad.Repository,
	userRepo user.Repository,
	wallet *appWallet.Service,
	txMgr *db.TransactionManager,
	dispatcher *appNotification.Dispatcher,
	logger logger.Interface,
) *SubmitAdUseCase {
	return &SubmitAdUseCase{
		adRepo:     adRepo,
		userRepo:   userRepo,
		walletSvc:  wallet,
		txMgr:      txMgr,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *SubmitAdUseCase) Execute(ctx context.Context, cmd SubmitAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if a.AdvertiserID() != cmd.AdvertiserID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}
	if !a.TotalCost().IsPositive() {
		return nil, fmt.Errorf("ad has no priced order")
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.Submit(); err != nil {
			return err
		}

		_, err := uc.walletSvc.ReserveForAd(txCtx, cmd.AdvertiserID, a.TotalCost(),
			appWallet.AdRef(a.SID()), "Ad budget escrow")
		if err != nil {
			return err
		}

		return uc.adRepo.Update(txCtx, a)
	})
	if err != nil {
		uc.logger.Warnw("ad submission failed", "error", err, "ad_sid", cmd.AdSID, "advertiser_id", cmd.AdvertiserID)
		return nil, err
	}

	uc.logger.Infow("ad submitted for review",
		"ad_sid", a.SID(),
		"advertiser_id", cmd.AdvertiserID,
		"escrowed", a.TotalCost())
	uc.notifyAdmins(ctx, a)
	return a, nil
}

func (uc *SubmitAdUseCase) notifyAdmins(ctx context.Context, a *ad.Ad) {
	if uc.dispatcher == nil {
		return
	}
	advertiserSID := ""
	if owner, err := uc.userRepo.GetByID(ctx, a.AdvertiserID()); err == nil {
		advertiserSID = owner.SID()
	}
	uc.dispatcher.AdPendingReview(a.SID(), appNotification.AdDisplayTitle(a.Text(), a.SID()), advertiserSID)
}
