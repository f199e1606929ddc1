package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// Tier is an admin-managed price breakpoint: a bundle of impressions sold at
// a fixed USD price. The effective CPM of a tier is priceUsd/impressions*1000.
type Tier struct {
	id          uint
	sid         string
	name        string
	impressions int64
	priceUsd    decimal.Decimal
	isActive    bool
	sortOrder   int

	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewTier(name string, impressions int64, priceUsd decimal.Decimal, sortOrder int) (*Tier, error) {
	if name == "" {
		return nil, fmt.Errorf("tier name is required")
	}
	if impressions < MinImpressions {
		return nil, ErrInvalidImpressions
	}
	if !priceUsd.IsPositive() {
		return nil, ErrInvalidPrice
	}

	now := biztime.NowUTC()
	return &Tier{
		sid:         id.NewTierSID(),
		name:        name,
		impressions: impressions,
		priceUsd:    priceUsd,
		isActive:    true,
		sortOrder:   sortOrder,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Update changes the tier's commercial terms.
func (t *Tier) Update(name string, impressions int64, priceUsd decimal.Decimal, sortOrder int) error {
	if name == "" {
		return fmt.Errorf("tier name is required")
	}
	if impressions < MinImpressions {
		return ErrInvalidImpressions
	}
	if !priceUsd.IsPositive() {
		return ErrInvalidPrice
	}

	t.name = name
	t.impressions = impressions
	t.priceUsd = priceUsd
	t.sortOrder = sortOrder
	t.touch()
	return nil
}

func (t *Tier) Activate() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.touch()
}

func (t *Tier) Deactivate() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.touch()
}

// BaseCPM returns the tier's effective CPM rounded to CPM precision.
func (t *Tier) BaseCPM() decimal.Decimal {
	return t.priceUsd.Div(decimal.NewFromInt(t.impressions)).Mul(decimal.NewFromInt(1000)).RoundBank(CPMScale)
}

func (t *Tier) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}

func (t *Tier) ID() uint {
	return t.id
}

func (t *Tier) SID() string {
	return t.sid
}

func (t *Tier) Name() string {
	return t.name
}

func (t *Tier) Impressions() int64 {
	return t.impressions
}

func (t *Tier) PriceUSD() decimal.Decimal {
	return t.priceUsd
}

func (t *Tier) IsActive() bool {
	return t.isActive
}

func (t *Tier) SortOrder() int {
	return t.sortOrder
}

func (t *Tier) Version() int {
	return t.version
}

func (t *Tier) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tier) UpdatedAt() time.Time {
	return t.updatedAt
}

// SetID sets the tier ID after persistence (used by repository after Create)
func (t *Tier) SetID(id uint) {
	t.id = id
}

// TierReconstructParams carries persisted state for rebuilding a Tier.
type TierReconstructParams struct {
	ID          uint
	SID         string
	Name        string
	Impressions int64
	PriceUSD    decimal.Decimal
	IsActive    bool
	SortOrder   int
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructTier rebuilds a Tier from persistence without validation.
func ReconstructTier(params TierReconstructParams) *Tier {
	return &Tier{
		id:          params.ID,
		sid:         params.SID,
		name:        params.Name,
		impressions: params.Impressions,
		priceUsd:    params.PriceUSD,
		isActive:    params.IsActive,
		sortOrder:   params.SortOrder,
		version:     params.Version,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
	}
}
