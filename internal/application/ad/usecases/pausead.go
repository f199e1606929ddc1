package usecases

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type PauseAdCommand struct {
	AdSID        string
	AdvertiserID uint
}

type PauseAdUseCase struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewPauseAdUseCase(adRepo ad.Repository, logger logger.Interface) *PauseAdUseCase {
	return &PauseAdUseCase{
		adRepo: adRepo,
		logger: logger,
	}
}

// Execute halts delivery. The budget stays spent; the ad can resume later.
func (uc *PauseAdUseCase) Execute(ctx context.Context, cmd PauseAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if a.AdvertiserID() != cmd.AdvertiserID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}

	if err := a.Pause(); err != nil {
		return nil, err
	}
	if err := uc.adRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to pause ad", "error", err, "ad_sid", cmd.AdSID)
		return nil, fmt.Errorf("failed to pause ad: %w", err)
	}

	uc.logger.Infow("ad paused", "ad_sid", a.SID(), "delivered", a.DeliveredImpressions())
	return a, nil
}
