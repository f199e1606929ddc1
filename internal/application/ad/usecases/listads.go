package usecases

import (
	"context"
	"fmt"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type ListAdsQuery struct {
	// AdvertiserID scopes the listing. Zero with IsAdmin lists everything.
	AdvertiserID uint
	IsAdmin      bool

	Status   string
	Category string
	Archived *bool
	Page     int
	PageSize int
}

type ListAdsUseCase struct {
	adRepo ad.Repository
	logger logger.Interface
}

func NewListAdsUseCase(adRepo ad.Repository, logger logger.Interface) *ListAdsUseCase {
	return &ListAdsUseCase{
		adRepo: adRepo,
		logger: logger,
	}
}

func (uc *ListAdsUseCase) Execute(ctx context.Context, q ListAdsQuery) ([]*ad.Ad, int64, error) {
	if q.AdvertiserID == 0 && !q.IsAdmin {
		return nil, 0, fmt.Errorf("advertiser is required")
	}

	ads, total, err := uc.adRepo.List(ctx, ad.ListFilter{
		Page:         q.Page,
		PageSize:     q.PageSize,
		AdvertiserID: q.AdvertiserID,
		Status:       q.Status,
		Category:     q.Category,
		Archived:     q.Archived,
	})
	if err != nil {
		uc.logger.Errorw("failed to list ads", "error", err, "advertiser_id", q.AdvertiserID)
		return nil, 0, fmt.Errorf("failed to list ads: %w", err)
	}
	return ads, total, nil
}
