package pricing

import "context"

// TierRepository defines persistence for pricing tiers.
type TierRepository interface {
	Create(ctx context.Context, tier *Tier) error
	Update(ctx context.Context, tier *Tier) error
	GetByID(ctx context.Context, id uint) (*Tier, error)
	GetBySID(ctx context.Context, sid string) (*Tier, error)

	// List returns all tiers ordered by impressions ascending.
	List(ctx context.Context) ([]*Tier, error)

	// ListActive returns active tiers ordered by impressions ascending.
	ListActive(ctx context.Context) ([]*Tier, error)

	// ExistsByImpressions reports whether a tier with the impression count
	// exists, excluding the given tier ID (zero checks all).
	ExistsByImpressions(ctx context.Context, impressions int64, excludeID uint) (bool, error)

	// Delete removes a tier. Running ads keep their priced terms.
	Delete(ctx context.Context, id uint) error
}
