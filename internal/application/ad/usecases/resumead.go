package usecases

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type ResumeAdCommand struct {
	AdSID        string
	AdvertiserID uint
}

type ResumeAdUseCase struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewResumeAdUseCase(adRepo ad.Repository, logger logger.Interface) *ResumeAdUseCase {
	return &ResumeAdUseCase{
		adRepo: adRepo,
		logger: logger,
	}
}

func (uc *ResumeAdUseCase) Execute(ctx context.Context, cmd ResumeAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if a.AdvertiserID() != cmd.AdvertiserID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}

	if err := a.Resume(); err != nil {
		return nil, err
	}
	if err := uc.adRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to resume ad", "error", err, "ad_sid", cmd.AdSID)
		return nil, fmt.Errorf("failed to resume ad: %w", err)
	}

	uc.logger.Infow("ad resumed", "ad_sid", a.SID(), "remaining_budget", a.RemainingBudget())
	return a, nil
}
