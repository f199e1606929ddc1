package usecases

import (
	"context"
	"fmt"

	appWallet "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type CancelAdCommand struct {
	AdSID       string
	RequesterID uint
	IsAdmin     bool
}

// CancelAdUseCase tears an ad down before it runs and gives the money back:
// escrow is refunded while the ad sits in moderation, the unspent budget is
// returned once the spend was already confirmed.
type CancelAdUseCase struct {
	adRepo    ad.Repository
	walletSvc *appWallet.Service
	txMgr     *db.TransactionManager
	logger    logger.Interface
}

func NewCancelAdUseCase(
	adRepo ad.Repository,
	wallet *appWallet.Service,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *CancelAdUseCase {
	return &CancelAdUseCase{
		adRepo:    adRepo,
		walletSvc: wallet,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *CancelAdUseCase) Execute(ctx context.Context, cmd CancelAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if !cmd.IsAdmin && a.AdvertiserID() != cmd.RequesterID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}

	prior := a.Status()
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := a.Cancel(); err != nil {
			return err
		}

		switch {
		case prior.HoldsReserve():
			_, err := uc.walletSvc.RefundAdReserve(txCtx, a.AdvertiserID(), a.TotalCost(),
				appWallet.AdRef(a.SID()), "Ad cancelled before review")
			if err != nil {
				return err
			}
		case prior == vo.AdStatusApproved || prior == vo.AdStatusScheduled:
			if a.RemainingBudget().IsPositive() {
				_, err := uc.walletSvc.ReturnBudget(txCtx, a.AdvertiserID(), a.RemainingBudget(),
					appWallet.AdRef(a.SID()), "Ad cancelled before start")
				if err != nil {
					return err
				}
			}
		}

		return uc.adRepo.Update(txCtx, a)
	})
	if err != nil {
		uc.logger.Warnw("ad cancellation failed", "error", err, "ad_sid", cmd.AdSID, "status", prior)
		return nil, err
	}

	uc.logger.Infow("ad cancelled", "ad_sid", a.SID(), "prior_status", prior)
	return a, nil
}
