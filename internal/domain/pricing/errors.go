package pricing

import "errors"

var (
	// ErrTierNotFound is returned when no pricing tier matches the lookup.
	ErrTierNotFound = errors.New("pricing tier not found")

	// ErrNoActiveTiers is returned when cost calculation needs a tier but none are active.
	ErrNoActiveTiers = errors.New("no active pricing tiers")

	// ErrDuplicateImpressions is returned when a tier's impression count collides with another tier.
	ErrDuplicateImpressions = errors.New("tier with this impression count already exists")

	// ErrInvalidImpressions is returned when an impression count is below the platform minimum.
	ErrInvalidImpressions = errors.New("impressions below platform minimum")

	// ErrInvalidPrice is returned when a tier price is zero or negative.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidPlatformFee is returned when the platform fee percentage is outside [0, 50].
	ErrInvalidPlatformFee = errors.New("platform fee percentage out of range")

	// ErrInvalidCPMBid is returned when a CPM bid is negative.
	ErrInvalidCPMBid = errors.New("cpm bid cannot be negative")
)
