package usecases

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type ArchiveAdCommand struct {
	AdSID        string
	AdvertiserID uint
	Archived     bool
}

type ArchiveAdUseCase struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewArchiveAdUseCase(adRepo ad.Repository, logger logger.Interface) *ArchiveAdUseCase {
	return &ArchiveAdUseCase{
		adRepo: adRepo,
		logger: logger,
	}
}

// Execute hides a finished ad from default listings, or brings it back.
func (uc *ArchiveAdUseCase) Execute(ctx context.Context, cmd ArchiveAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if a.AdvertiserID() != cmd.AdvertiserID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}
	if cmd.Archived && !a.Status().IsTerminal() {
		return nil, fmt.Errorf("only finished ads can be archived")
	}

	if cmd.Archived {
		a.Archive()
	} else {
		a.Unarchive()
	}
	if err := uc.adRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}
	return a, nil
}
