package usecases

import (
	"context"
	"fmt"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/logger"
)

// UpdateAdCommand rewrites parts of a draft. Nil sections stay untouched.
type UpdateAdCommand struct {
	AdSID        string
	AdvertiserID uint

	Content  *ContentInput
	Order    *OrderInput
	Schedule *ScheduleInput
}

type UpdateAdUseCase struct {
	adRepo     ad.Repository
	pricingSvc *appPricing.Service
	logger     logger.Interface
}

func NewUpdateAdUseCase(adRepo ad.Repository, pricingSvc *appPricing.Service, logger logger.Interface) *UpdateAdUseCase {
	return &UpdateAdUseCase{
		adRepo:     adRepo,
		pricingSvc: pricingSvc,
		logger:     logger,
	}
}

// Execute edits a draft and reprices it. The aggregate rejects edits outside
// DRAFT, so an ad sent back from moderation must be in DRAFT before this runs.
func (uc *UpdateAdUseCase) Execute(ctx context.Context, cmd UpdateAdCommand) (*ad.Ad, error) {
	a, err := uc.adRepo.GetBySID(ctx, cmd.AdSID)
	if err != nil {
		return nil, err
	}
	if a.AdvertiserID() != cmd.AdvertiserID {
		return nil, fmt.Errorf("%w: %s", ad.ErrAdNotFound, cmd.AdSID)
	}

	if cmd.Content != nil {
		buttons, err := buildButtons(cmd.Content.Buttons)
		if err != nil {
			return nil, fmt.Errorf("invalid buttons: %w", err)
		}
		poll, err := buildPoll(cmd.Content.Poll)
		if err != nil {
			return nil, fmt.Errorf("invalid poll: %w", err)
		}
		if err := a.UpdateContent(ad.UpdateContentParams{
			ContentType: vo.ContentType(cmd.Content.ContentType),
			Text:        cmd.Content.Text,
			HTMLContent: cmd.Content.HTMLContent,
			MediaURL:    cmd.Content.MediaURL,
			MediaType:   cmd.Content.MediaType,
			Buttons:     buttons,
			Poll:        poll,
			Category:    cmd.Content.Category,
		}); err != nil {
			return nil, err
		}
	}

	tierSID := ""
	if cmd.Order != nil {
		targeting, err := buildTargeting(cmd.Order.Targeting)
		if err != nil {
			return nil, fmt.Errorf("invalid targeting: %w", err)
		}
		if err := a.UpdateOrder(a.SelectedTierID(), cmd.Order.TargetImpressions, cmd.Order.CPMBid, targeting); err != nil {
			return nil, err
		}
		tierSID = cmd.Order.TierSID
	}

	if cmd.Schedule != nil {
		schedule, err := buildSchedule(cmd.Schedule)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule: %w", err)
		}
		if err := a.UpdateSchedule(schedule); err != nil {
			return nil, err
		}
	}

	// Any edit can move the price: category, segments and impression count
	// all feed the quote.
	if cmd.Content != nil || cmd.Order != nil {
		tier, err := priceDraft(ctx, uc.pricingSvc, a, tierSID)
		if err != nil {
			uc.logger.Warnw("failed to reprice ad", "error", err, "ad_sid", cmd.AdSID)
			return nil, err
		}
		if tier != nil {
			tierID := tier.ID()
			if err := a.UpdateOrder(&tierID, a.TargetImpressions(), a.CPMBid(), a.Targeting()); err != nil {
				return nil, err
			}
		}
	}

	if err := uc.adRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update ad", "error", err, "ad_sid", cmd.AdSID)
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}

	uc.logger.Infow("ad updated", "ad_sid", a.SID(), "total_cost", a.TotalCost())
	return a, nil
}
