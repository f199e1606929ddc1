package pricing

import "github.com/shopspring/decimal"

// categoryMultipliers prices ad categories relative to the base CPM. Slugs
// missing from the table (including "general") price at 1.0.
var categoryMultipliers = map[string]decimal.Decimal{
	"crypto":    decimal.RequireFromString("1.4"),
	"finance":   decimal.RequireFromString("1.35"),
	"ai":        decimal.RequireFromString("1.3"),
	"tech":      decimal.RequireFromString("1.2"),
	"business":  decimal.RequireFromString("1.15"),
	"gaming":    decimal.RequireFromString("1.1"),
	"education": decimal.RequireFromString("1.05"),
}

// segmentMultipliers prices AI audience segments. When an ad targets several
// segments only the most expensive one applies.
var segmentMultipliers = map[string]decimal.Decimal{
	"crypto_traders":  decimal.RequireFromString("1.4"),
	"investors":       decimal.RequireFromString("1.35"),
	"developers":      decimal.RequireFromString("1.25"),
	"business_owners": decimal.RequireFromString("1.2"),
	"gamers":          decimal.RequireFromString("1.1"),
	"students":        decimal.RequireFromString("1.05"),
}

// CategoryMultiplier returns the price multiplier for a category slug.
func CategoryMultiplier(slug string) decimal.Decimal {
	if m, ok := categoryMultipliers[slug]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// SegmentMultiplier returns the price multiplier for an AI segment slug and
// whether the slug is known.
func SegmentMultiplier(slug string) (decimal.Decimal, bool) {
	m, ok := segmentMultipliers[slug]
	return m, ok
}

// KnownSegments returns the slugs of all priced AI segments.
func KnownSegments() []string {
	slugs := make([]string, 0, len(segmentMultipliers))
	for slug := range segmentMultipliers {
		slugs = append(slugs, slug)
	}
	return slugs
}
