// Package usecases implements the advertiser-facing ad lifecycle: drafting,
// pricing, submission into moderation escrow, pause/resume and cancellation.
package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	appPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/application/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/ad/valueobjects"
	domainPricing "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
)

// ButtonInput is one inline button as the API receives it.
type ButtonInput struct {
	Text  string
	URL   string
	Color string
}

// PollInput is an optional poll creative.
type PollInput struct {
	Question        string
	Options         []string
	IsAnonymous     bool
	MultipleAnswers bool
}

// ScheduleInput bounds when the ad may serve.
type ScheduleInput struct {
	Start       *time.Time
	End         *time.Time
	Timezone    string
	ActiveDays  []int
	ActiveHours []vo.HourRange
}

// TargetingInput narrows the audience.
type TargetingInput struct {
	AISegments      []string
	SpecificBotIDs  []uint
	ExcludedUserIDs []int64
	Languages       []string
}

// ContentInput is the creative surface.
type ContentInput struct {
	ContentType string
	Text        string
	HTMLContent string
	MediaURL    string
	MediaType   string
	Buttons     []ButtonInput
	Poll        *PollInput
	Category    string
}

// OrderInput is everything pricing depends on.
type OrderInput struct {
	TierSID           string
	TargetImpressions int64
	CPMBid            decimal.Decimal
	Targeting         TargetingInput
}

func buildButtons(inputs []ButtonInput) ([]vo.Button, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	buttons := make([]vo.Button, 0, len(inputs))
	for _, in := range inputs {
		color := vo.ButtonColor(in.Color)
		if in.Color == "" {
			color = vo.ButtonColorDefault
		}
		b, err := vo.NewButton(in.Text, in.URL, color)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

func buildPoll(in *PollInput) (*vo.Poll, error) {
	if in == nil {
		return nil, nil
	}
	return vo.NewPoll(in.Question, in.Options, in.IsAnonymous, in.MultipleAnswers)
}

func buildSchedule(in *ScheduleInput) (vo.Schedule, error) {
	if in == nil {
		return vo.Schedule{}, nil
	}
	return vo.NewSchedule(in.Start, in.End, in.Timezone, in.ActiveDays, in.ActiveHours)
}

func buildTargeting(in TargetingInput) (vo.Targeting, error) {
	return vo.NewTargeting(in.AISegments, in.SpecificBotIDs, in.ExcludedUserIDs, in.Languages)
}

// priceDraft runs the order through the pricing service and stores the quote
// on the draft.
func priceDraft(ctx context.Context, pricingSvc *appPricing.Service, draft *ad.Ad, tierSID string) (*domainPricing.Tier, error) {
	targeting := draft.Targeting()
	quote, err := pricingSvc.QuoteAdCost(ctx, appPricing.QuoteInput{
		TierSID:         tierSID,
		Impressions:     draft.TargetImpressions(),
		Category:        draft.Category(),
		AISegments:      targeting.AISegments(),
		HasSpecificBots: targeting.HasSpecificBots(),
		LanguageCount:   len(targeting.Languages()),
		CPMBid:          draft.CPMBid(),
	})
	if err != nil {
		return nil, err
	}

	b := quote.Breakdown
	if err := draft.SetPricing(b.BaseCPM, draft.CPMBid(), b.FinalCPM, b.TotalCost, b.PlatformFee, b.BotOwnerRevenue); err != nil {
		return nil, err
	}
	return quote.Tier, nil
}
