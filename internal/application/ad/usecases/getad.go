package usecases

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type GetAdQuery struct {
	AdSID       string
	RequesterID uint
	IsAdmin     bool
}

type GetAdUseCase struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewGetAdUseCase(adRepo ad.Repository, logger logger.Interface) *GetAdUseCase {
	return &GetAdUseCase{
		adRepo: adRepo,
		logger: logger,
	}
}

// Execute returns one ad. Non-admin callers only see their own ads; a foreign
// SID reads as not found so ownership cannot be probed.
func (uc *GetAdUseCase) Execute(ctx context.Context, q GetAdQuery) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, q.AdSID)
	if err != nil {
		return nil, err
	}
	if !q.IsAdmin && a.AdvertiserID() != q.RequesterID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, q.AdSID)
	}
	return a, nil
}
