package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func growthTier(t *testing.T) *Tier {
	t.Helper()
	tier, err := NewTier("Growth", 10000, dec(t, "45"), 2)
	require.NoError(t, err)
	return tier
}

func assertDecEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got.String())
}

// =============================================================================
// Cost Calculation Tests
// =============================================================================

// Growth tier order: 10000 impressions at $45, AI category, empty targeting,
// no bid, 20% platform fee.
func TestCalculateAdCost_GrowthTierAICategory(t *testing.T) {
	breakdown, err := CalculateAdCost(CostInput{
		Tier:               growthTier(t),
		Impressions:        10000,
		Category:           "ai",
		CPMBid:             decimal.Zero,
		PlatformFeePercent: dec(t, "20"),
	})
	require.NoError(t, err)

	assertDecEqual(t, "4.5", breakdown.BaseCPM)
	assertDecEqual(t, "1.3", breakdown.CategoryMultiplier)
	assertDecEqual(t, "1", breakdown.TargetingMultiplier)
	assertDecEqual(t, "5.85", breakdown.FinalCPM)
	assertDecEqual(t, "58.50", breakdown.TotalCost)
	assertDecEqual(t, "11.70", breakdown.PlatformFee)
	assertDecEqual(t, "46.80", breakdown.BotOwnerRevenue)
	assertDecEqual(t, "0.00585", breakdown.RevenuePerImpression)
}

func TestCalculateAdCost_FeePlusRevenueEqualsTotal(t *testing.T) {
	tests := []struct {
		name        string
		impressions int64
		category    string
		bid         string
		feePercent  string
	}{
		{name: "even split", impressions: 10000, category: "ai", bid: "0", feePercent: "20"},
		{name: "odd fee percent", impressions: 2500, category: "general", bid: "0", feePercent: "30"},
		{name: "with bid", impressions: 7777, category: "tech", bid: "0.33", feePercent: "15"},
		{name: "zero fee", impressions: 1000, category: "crypto", bid: "1.01", feePercent: "0"},
		{name: "max fee", impressions: 123456, category: "gaming", bid: "0.07", feePercent: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := CalculateAdCost(CostInput{
				Tier:               growthTier(t),
				Impressions:        tt.impressions,
				Category:           tt.category,
				CPMBid:             dec(t, tt.bid),
				PlatformFeePercent: dec(t, tt.feePercent),
			})
			require.NoError(t, err)

			sum := breakdown.PlatformFee.Add(breakdown.BotOwnerRevenue)
			assert.True(t, sum.Equal(breakdown.TotalCost), "fee %s + revenue %s must equal total %s",
				breakdown.PlatformFee, breakdown.BotOwnerRevenue, breakdown.TotalCost)
			assert.False(t, breakdown.TotalCost.IsNegative())
		})
	}
}

// 4.5 CPM over 2500 impressions at a 30% fee lands the fee on an exact half
// cent; ties must round to the even cent.
func TestCalculateAdCost_BankersRounding(t *testing.T) {
	base := dec(t, "4.5")
	breakdown, err := CalculateAdCost(CostInput{
		BaseCPM:            &base,
		Impressions:        2500,
		Category:           "general",
		CPMBid:             decimal.Zero,
		PlatformFeePercent: dec(t, "30"),
	})
	require.NoError(t, err)

	assertDecEqual(t, "11.25", breakdown.BaseCost)
	assertDecEqual(t, "3.38", breakdown.PlatformFee)
	assertDecEqual(t, "7.87", breakdown.BotOwnerRevenue)
}

func TestRoundBank_TieBehavior(t *testing.T) {
	assert.Equal(t, "0.12", dec(t, "0.125").RoundBank(2).StringFixed(2))
	assert.Equal(t, "0.14", dec(t, "0.135").RoundBank(2).StringFixed(2))
	assert.Equal(t, "5.8500", dec(t, "5.85005").RoundBank(4).StringFixed(4))
	assert.Equal(t, "5.8502", dec(t, "5.85015").RoundBank(4).StringFixed(4))
}

func TestCalculateAdCost_CPMBidAddsAfterMultipliers(t *testing.T) {
	breakdown, err := CalculateAdCost(CostInput{
		Tier:               growthTier(t),
		Impressions:        10000,
		Category:           "ai",
		CPMBid:             dec(t, "0.5"),
		PlatformFeePercent: dec(t, "20"),
	})
	require.NoError(t, err)

	// 4.5 * 1.3 + 0.5, not (4.5 + 0.5) * 1.3
	assertDecEqual(t, "6.35", breakdown.FinalCPM)
	assertDecEqual(t, "63.50", breakdown.TotalCost)
}

func TestCalculateAdCost_InputValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CostInput)
		wantErr error
	}{
		{
			name:    "impressions below minimum",
			mutate:  func(in *CostInput) { in.Impressions = 99 },
			wantErr: ErrInvalidImpressions,
		},
		{
			name:    "negative bid",
			mutate:  func(in *CostInput) { in.CPMBid = dec(t, "-0.01") },
			wantErr: ErrInvalidCPMBid,
		},
		{
			name:    "fee above cap",
			mutate:  func(in *CostInput) { in.PlatformFeePercent = dec(t, "50.01") },
			wantErr: ErrInvalidPlatformFee,
		},
		{
			name:    "negative fee",
			mutate:  func(in *CostInput) { in.PlatformFeePercent = dec(t, "-1") },
			wantErr: ErrInvalidPlatformFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := CostInput{
				Tier:               growthTier(t),
				Impressions:        10000,
				Category:           "general",
				CPMBid:             decimal.Zero,
				PlatformFeePercent: dec(t, "20"),
			}
			tt.mutate(&in)

			_, err := CalculateAdCost(in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculateAdCost_BaseCPMFallbacks(t *testing.T) {
	t.Run("explicit base cpm wins over tier", func(t *testing.T) {
		base := dec(t, "9")
		breakdown, err := CalculateAdCost(CostInput{
			Tier:               growthTier(t),
			BaseCPM:            &base,
			Impressions:        1000,
			PlatformFeePercent: dec(t, "20"),
		})
		require.NoError(t, err)
		assertDecEqual(t, "9", breakdown.BaseCPM)
	})

	t.Run("configured fallback when no tier", func(t *testing.T) {
		breakdown, err := CalculateAdCost(CostInput{
			Impressions:        1000,
			PlatformFeePercent: dec(t, "20"),
			FallbackBaseCPM:    dec(t, "2"),
		})
		require.NoError(t, err)
		assertDecEqual(t, "2", breakdown.BaseCPM)
	})

	t.Run("built-in default as last resort", func(t *testing.T) {
		breakdown, err := CalculateAdCost(CostInput{
			Impressions:        1000,
			PlatformFeePercent: dec(t, "20"),
		})
		require.NoError(t, err)
		assertDecEqual(t, "1.5", breakdown.BaseCPM)
	})
}

// =============================================================================
// Targeting Multiplier Tests
// =============================================================================

func TestCalculateAdCost_TargetingMultipliers(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		bots     bool
		langs    int
		want     string
	}{
		{name: "empty targeting", want: "1"},
		{name: "single segment", segments: []string{"developers"}, want: "1.25"},
		{name: "max of segments", segments: []string{"students", "crypto_traders", "gamers"}, want: "1.4"},
		{name: "unknown segment floors at one", segments: []string{"astronauts"}, want: "1"},
		{name: "specific bots", bots: true, want: "1.2"},
		{name: "narrow languages", langs: 2, want: "1.1"},
		{name: "three languages not narrow", langs: 3, want: "1"},
		{name: "all combined", segments: []string{"developers"}, bots: true, langs: 1, want: "1.65"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := CalculateAdCost(CostInput{
				Tier:               growthTier(t),
				Impressions:        10000,
				Category:           "general",
				AISegments:         tt.segments,
				HasSpecificBots:    tt.bots,
				LanguageCount:      tt.langs,
				CPMBid:             decimal.Zero,
				PlatformFeePercent: dec(t, "20"),
			})
			require.NoError(t, err)
			assertDecEqual(t, tt.want, breakdown.TargetingMultiplier)
		})
	}
}

func TestCategoryMultiplier_UnknownIsOne(t *testing.T) {
	assertDecEqual(t, "1", CategoryMultiplier("general"))
	assertDecEqual(t, "1", CategoryMultiplier("knitting"))
	assertDecEqual(t, "1.3", CategoryMultiplier("ai"))
}

// =============================================================================
// Promo Tests
// =============================================================================

func TestCalculateAdCost_Promo(t *testing.T) {
	run := func(t *testing.T, promo *Promo) *CostBreakdown {
		t.Helper()
		breakdown, err := CalculateAdCost(CostInput{
			Tier:               growthTier(t),
			Impressions:        10000,
			Category:           "ai",
			CPMBid:             decimal.Zero,
			PlatformFeePercent: dec(t, "20"),
			Promo:              promo,
		})
		require.NoError(t, err)
		return breakdown
	}

	t.Run("percentage", func(t *testing.T) {
		b := run(t, &Promo{Kind: PromoPercentage, Value: dec(t, "10")})
		assertDecEqual(t, "5.85", b.Discount)
		assertDecEqual(t, "52.65", b.TotalCost)
	})

	t.Run("fixed", func(t *testing.T) {
		b := run(t, &Promo{Kind: PromoFixed, Value: dec(t, "8.50")})
		assertDecEqual(t, "50.00", b.TotalCost)
	})

	t.Run("discount cannot push cost below zero", func(t *testing.T) {
		b := run(t, &Promo{Kind: PromoFixed, Value: dec(t, "100")})
		assertDecEqual(t, "0", b.TotalCost)
		assertDecEqual(t, "0", b.PlatformFee)
	})

	t.Run("nil promo", func(t *testing.T) {
		b := run(t, nil)
		assertDecEqual(t, "0", b.Discount)
		assertDecEqual(t, "58.50", b.TotalCost)
	})
}

// =============================================================================
// Tier Selection Tests
// =============================================================================

func TestFindTier(t *testing.T) {
	mk := func(name string, impressions int64, price string, sort int, active bool) *Tier {
		tier, err := NewTier(name, impressions, dec(t, price), sort)
		require.NoError(t, err)
		if !active {
			tier.Deactivate()
		}
		return tier
	}

	tiers := []*Tier{
		mk("Scale", 50000, "180", 3, true),
		mk("Starter", 1000, "10", 1, true),
		mk("Growth", 10000, "45", 2, true),
		mk("Legacy", 5000, "20", 9, false),
	}

	tests := []struct {
		name        string
		impressions int64
		want        string
	}{
		{name: "exact match", impressions: 10000, want: "Growth"},
		{name: "just below next tier", impressions: 9999, want: "Starter"},
		{name: "below all tiers picks smallest", impressions: 500, want: "Starter"},
		{name: "above all tiers picks largest", impressions: 900000, want: "Scale"},
		{name: "inactive tier ignored", impressions: 5000, want: "Starter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTier(tiers, tt.impressions)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name())
		})
	}

	t.Run("no active tiers", func(t *testing.T) {
		assert.Nil(t, FindTier([]*Tier{mk("Off", 1000, "10", 1, false)}, 1000))
	})

	t.Run("equal impressions breaks tie by sort order", func(t *testing.T) {
		a := mk("A", 10000, "50", 2, true)
		b := mk("B", 10000, "45", 1, true)
		got := FindTier([]*Tier{a, b}, 10000)
		require.NotNil(t, got)
		assert.Equal(t, "B", got.Name())
	})
}

// =============================================================================
// Impression Revenue Tests
// =============================================================================

func TestCalculateImpressionRevenue(t *testing.T) {
	rev := CalculateImpressionRevenue(dec(t, "5.85"), dec(t, "20"))

	assertDecEqual(t, "0.00585", rev.RevenuePerImpression)
	assertDecEqual(t, "0.00117", rev.PlatformFee)
	assertDecEqual(t, "0.00468", rev.BotOwnerEarns)
}

func TestCalculateImpressionRevenue_SplitIsExact(t *testing.T) {
	cpms := []string{"5.85", "1.5", "0.0001", "17.7777", "9.99"}
	fees := []string{"0", "15", "20", "33", "50"}

	for _, cpm := range cpms {
		for _, fee := range fees {
			rev := CalculateImpressionRevenue(dec(t, cpm), dec(t, fee))
			sum := rev.PlatformFee.Add(rev.BotOwnerEarns)
			assert.True(t, sum.Equal(rev.RevenuePerImpression),
				"cpm=%s fee=%s: %s + %s != %s", cpm, fee, rev.PlatformFee, rev.BotOwnerEarns, rev.RevenuePerImpression)
		}
	}
}

// Full delivery of the Growth order must pay the bot owner exactly the quoted
// revenue share.
func TestImpressionRevenue_SumsToQuotedShare(t *testing.T) {
	rev := CalculateImpressionRevenue(dec(t, "5.85"), dec(t, "20"))

	earned := rev.BotOwnerEarns.Mul(decimal.NewFromInt(10000))
	assertDecEqual(t, "46.80", earned)

	spent := rev.RevenuePerImpression.Mul(decimal.NewFromInt(10000))
	assertDecEqual(t, "58.50", spent)
}

// =============================================================================
// Tier Aggregate Tests
// =============================================================================

func TestNewTier(t *testing.T) {
	tier, err := NewTier("Growth", 10000, dec(t, "45"), 2)
	require.NoError(t, err)

	assert.Contains(t, tier.SID(), "tier_")
	assert.True(t, tier.IsActive())
	assertDecEqual(t, "4.5", tier.BaseCPM())
}

func TestNewTier_Validation(t *testing.T) {
	_, err := NewTier("", 10000, dec(t, "45"), 1)
	assert.Error(t, err)

	_, err = NewTier("Tiny", 99, dec(t, "1"), 1)
	assert.ErrorIs(t, err, ErrInvalidImpressions)

	_, err = NewTier("Free", 1000, decimal.Zero, 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestTier_BaseCPM_Rounds(t *testing.T) {
	tier, err := NewTier("Odd", 7000, dec(t, "33"), 1)
	require.NoError(t, err)

	// 33/7000*1000 = 4.7142857...
	assertDecEqual(t, "4.7143", tier.BaseCPM())
}

func TestTier_ActivateDeactivate(t *testing.T) {
	tier := growthTier(t)
	v := tier.Version()

	tier.Deactivate()
	assert.False(t, tier.IsActive())
	assert.Equal(t, v+1, tier.Version())

	tier.Deactivate() // no-op
	assert.Equal(t, v+1, tier.Version())

	tier.Activate()
	assert.True(t, tier.IsActive())
}
