// Package pricing computes what an ad costs and how delivery revenue splits
// between the platform and bot owners. Every function here is pure: the same
// inputs always produce the same outputs, and nothing touches storage.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Rounding precisions for the engine's outputs. CPMs carry 4 decimal digits,
// money totals 2, per-impression revenue 6. Ties round to even.
const (
	CPMScale           = 4
	MoneyScale         = 2
	PerImpressionScale = 6

	// MinImpressions is the smallest order the platform sells.
	MinImpressions = 100

	// MaxPlatformFeePercent caps the platform's cut of ad spend.
	MaxPlatformFeePercent = 50
)

var (
	// DefaultBaseCPM applies when neither an explicit base CPM nor a tier is available.
	DefaultBaseCPM = decimal.RequireFromString("1.5")

	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
	one      = decimal.NewFromInt(1)
)

// PromoKind discriminates how a promo code discounts the base cost.
type PromoKind string

const (
	PromoPercentage PromoKind = "percentage"
	PromoFixed      PromoKind = "fixed"
)

// Promo is a resolved promo code: a percentage of the base cost or a fixed
// USD amount off.
type Promo struct {
	Kind  PromoKind
	Value decimal.Decimal
}

// CostInput carries everything cost calculation depends on. Targeting is
// passed pre-flattened so the engine stays independent of the ad aggregate.
type CostInput struct {
	Tier        *Tier
	Impressions int64
	Category    string

	AISegments      []string
	HasSpecificBots bool
	LanguageCount   int

	CPMBid             decimal.Decimal
	PlatformFeePercent decimal.Decimal
	Promo              *Promo

	// BaseCPM overrides the tier-derived CPM when set.
	BaseCPM *decimal.Decimal

	// FallbackBaseCPM replaces DefaultBaseCPM when positive. Comes from the
	// default_base_cpm platform setting.
	FallbackBaseCPM decimal.Decimal
}

// CostBreakdown is the full pricing result. CPM fields are rounded to
// CPMScale, money fields to MoneyScale and RevenuePerImpression to
// PerImpressionScale.
type CostBreakdown struct {
	BaseCPM             decimal.Decimal
	CategoryMultiplier  decimal.Decimal
	TargetingMultiplier decimal.Decimal
	AdjustedCPM         decimal.Decimal
	FinalCPM            decimal.Decimal

	BaseCost        decimal.Decimal
	Discount        decimal.Decimal
	FinalCost       decimal.Decimal
	PlatformFee     decimal.Decimal
	BotOwnerRevenue decimal.Decimal
	TotalCost       decimal.Decimal

	RevenuePerImpression decimal.Decimal
}

// ImpressionRevenue is the split applied on every recorded delivery. The
// three fields satisfy RevenuePerImpression = PlatformFee + BotOwnerEarns
// exactly.
type ImpressionRevenue struct {
	RevenuePerImpression decimal.Decimal
	PlatformFee          decimal.Decimal
	BotOwnerEarns        decimal.Decimal
}

// CalculateAdCost prices an ad order.
func CalculateAdCost(in CostInput) (*CostBreakdown, error) {
	if in.Impressions < MinImpressions {
		return nil, ErrInvalidImpressions
	}
	if in.CPMBid.IsNegative() {
		return nil, ErrInvalidCPMBid
	}
	if in.PlatformFeePercent.IsNegative() || in.PlatformFeePercent.GreaterThan(decimal.NewFromInt(MaxPlatformFeePercent)) {
		return nil, ErrInvalidPlatformFee
	}

	baseCPM := resolveBaseCPM(in)
	categoryMult := CategoryMultiplier(in.Category)
	targetingMult := targetingMultiplier(in)

	adjustedCPM := baseCPM.Mul(categoryMult).Mul(targetingMult).RoundBank(CPMScale)
	finalCPM := adjustedCPM.Add(in.CPMBid).RoundBank(CPMScale)

	impressions := decimal.NewFromInt(in.Impressions)
	baseCost := finalCPM.Mul(impressions).Div(thousand).RoundBank(MoneyScale)

	discount := promoDiscount(in.Promo, baseCost)
	finalCost := baseCost.Sub(discount)
	if finalCost.IsNegative() {
		finalCost = decimal.Zero
	}
	finalCost = finalCost.RoundBank(MoneyScale)

	platformFee := finalCost.Mul(in.PlatformFeePercent).Div(hundred).RoundBank(MoneyScale)
	botOwnerRevenue := finalCost.Sub(platformFee)

	return &CostBreakdown{
		BaseCPM:              baseCPM,
		CategoryMultiplier:   categoryMult,
		TargetingMultiplier:  targetingMult,
		AdjustedCPM:          adjustedCPM,
		FinalCPM:             finalCPM,
		BaseCost:             baseCost,
		Discount:             discount.RoundBank(MoneyScale),
		FinalCost:            finalCost,
		PlatformFee:          platformFee,
		BotOwnerRevenue:      botOwnerRevenue,
		TotalCost:            finalCost,
		RevenuePerImpression: finalCPM.Div(thousand).RoundBank(PerImpressionScale),
	}, nil
}

// FindTier picks the tier whose impression bundle best matches the requested
// volume: the largest active tier not exceeding the request, or the smallest
// active tier when the request is below all of them. Equal impression counts
// break ties by the lower sort order.
func FindTier(tiers []*Tier, impressions int64) *Tier {
	active := make([]*Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Impressions() != active[j].Impressions() {
			return active[i].Impressions() < active[j].Impressions()
		}
		return active[i].SortOrder() < active[j].SortOrder()
	})

	var match *Tier
	for _, t := range active {
		if t.Impressions() > impressions {
			break
		}
		// first tier at each impression level wins, so the lower sort
		// order takes equal-impression ties
		if match == nil || t.Impressions() > match.Impressions() {
			match = t
		}
	}
	if match == nil {
		return active[0]
	}
	return match
}

// CalculateImpressionRevenue splits one impression's worth of the final CPM.
func CalculateImpressionRevenue(finalCPM, platformFeePercent decimal.Decimal) ImpressionRevenue {
	perImpression := finalCPM.Div(thousand).RoundBank(PerImpressionScale)
	fee := perImpression.Mul(platformFeePercent).Div(hundred).RoundBank(PerImpressionScale)

	return ImpressionRevenue{
		RevenuePerImpression: perImpression,
		PlatformFee:          fee,
		BotOwnerEarns:        perImpression.Sub(fee),
	}
}

func resolveBaseCPM(in CostInput) decimal.Decimal {
	if in.BaseCPM != nil && in.BaseCPM.IsPositive() {
		return in.BaseCPM.RoundBank(CPMScale)
	}
	if in.Tier != nil {
		return in.Tier.BaseCPM()
	}
	if in.FallbackBaseCPM.IsPositive() {
		return in.FallbackBaseCPM.RoundBank(CPMScale)
	}
	return DefaultBaseCPM
}

func targetingMultiplier(in CostInput) decimal.Decimal {
	mult := one

	if len(in.AISegments) > 0 {
		best := one
		for _, slug := range in.AISegments {
			if m, ok := SegmentMultiplier(slug); ok && m.GreaterThan(best) {
				best = m
			}
		}
		mult = mult.Mul(best)
	}

	if in.HasSpecificBots {
		mult = mult.Mul(decimal.RequireFromString("1.2"))
	}

	if in.LanguageCount > 0 && in.LanguageCount < 3 {
		mult = mult.Mul(decimal.RequireFromString("1.1"))
	}

	return mult
}

func promoDiscount(promo *Promo, baseCost decimal.Decimal) decimal.Decimal {
	if promo == nil || !promo.Value.IsPositive() {
		return decimal.Zero
	}

	switch promo.Kind {
	case PromoPercentage:
		return baseCost.Mul(promo.Value).Div(hundred)
	case PromoFixed:
		return promo.Value
	default:
		return decimal.Zero
	}
}
