package usecases

import (
	"context"
	"fmt"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

type CreateAdCommand struct {
	AdvertiserID uint
	Content      ContentInput
	Order        OrderInput
	Schedule     *ScheduleInput
}

type CreateAdUseCase struct {
	adRepo     ad.Repository
	pricingSvc *appPricing.Service
	logger     logger.Interface
}

func NewCreateAdUseCase(adRepo ad.Repository, pricingSvc *appPricing.Service, logger logger.Interface) *CreateAdUseCase {
	return &CreateAdUseCase{
		adRepo:     adRepo,
		pricingSvc: pricingSvc,
		logger:     logger,
	}
}

// Execute creates a priced draft. No money moves until submission.
func (uc *CreateAdUseCase) Execute(ctx context.Context, cmd CreateAdCommand) (*ad.Ad, error) {
	buttons, err := buildButtons(cmd.Content.Buttons)
	if err != nil {
		return nil, fmt.Errorf("invalid buttons: %w", err)
	}
	poll, err := buildPoll(cmd.Content.Poll)
	if err != nil {
		return nil, fmt.Errorf("invalid poll: %w", err)
	}
	schedule, err := buildSchedule(cmd.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	targeting, err := buildTargeting(cmd.Order.Targeting)
	if err != nil {
		return nil, fmt.Errorf("invalid targeting: %w", err)
	}

	draft, err := ad.NewAd(ad.NewAdParams{
		AdvertiserID:      cmd.AdvertiserID,
		ContentType:       vo.ContentType(cmd.Content.ContentType),
		Text:              cmd.Content.Text,
		HTMLContent:       cmd.Content.HTMLContent,
		MediaURL:          cmd.Content.MediaURL,
		MediaType:         cmd.Content.MediaType,
		Buttons:           buttons,
		Poll:              poll,
		Category:          cmd.Content.Category,
		TargetImpressions: cmd.Order.TargetImpressions,
		CPMBid:            cmd.Order.CPMBid,
		Targeting:         targeting,
		Schedule:          schedule,
	})
	if err != nil {
		return nil, err
	}

	tier, err := priceDraft(ctx, uc.pricingSvc, draft, cmd.Order.TierSID)
	if err != nil {
		uc.logger.Warnw("failed to price new ad", "error", err, "advertiser_id", cmd.AdvertiserID)
		return nil, err
	}
	if tier != nil {
		tierID := tier.ID()
		if err := draft.UpdateOrder(&tierID, draft.TargetImpressions(), draft.CPMBid(), draft.Targeting()); err != nil {
			return nil, err
		}
	}

	if err := uc.adRepo.Create(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save ad draft", "error", err, "advertiser_id", cmd.AdvertiserID)
		return nil, fmt.Errorf("failed to save ad: %w", err)
	}

	uc.logger.Infow("ad draft created",
		"ad_sid", draft.SID(),
		"advertiser_id", cmd.AdvertiserID,
		"impressions", draft.TargetImpressions(),
		"total_cost", draft.TotalCost())
	return draft, nil
}
