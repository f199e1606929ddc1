package delivery

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ImpressionListFilter narrows impression listings.
type ImpressionListFilter struct {
	Page     int
	PageSize int
	AdID     *uint
	BotID    *uint
	From     *time.Time
	To       *time.Time
}

// ImpressionStats aggregates delivery counters for dashboards.
type ImpressionStats struct {
	Impressions   int64
	Revenue       decimal.Decimal
	PlatformFee   decimal.Decimal
	BotOwnerEarns decimal.Decimal
}

// ImpressionRepository persists delivered impressions.
type ImpressionRepository interface {
	// Create appends an impression row
	Create(ctx context.Context, imp *Impression) error

	// GetBySID retrieves an impression by short ID
	GetBySID(ctx context.Context, sid string) (*Impression, error)

	// List returns impressions matching the filter with total count
	List(ctx context.Context, filter ImpressionListFilter) ([]*Impression, int64, error)

	// StatsByAd aggregates counters for one ad
	StatsByAd(ctx context.Context, adID uint) (*ImpressionStats, error)

	// StatsByBot aggregates counters for one bot
	StatsByBot(ctx context.Context, botID uint) (*ImpressionStats, error)

	// SumRevenueByAd totals recorded revenue for one ad
	SumRevenueByAd(ctx context.Context, adID uint) (decimal.Decimal, error)
}

// ClickListFilter narrows click listings.
type ClickListFilter struct {
	Page     int
	PageSize int
	AdID     *uint
	BotID    *uint
}

// ClickRepository persists button click events.
type ClickRepository interface {
	// Create appends a click row
	Create(ctx context.Context, click *ClickEvent) error

	// List returns clicks matching the filter with total count
	List(ctx context.Context, filter ClickListFilter) ([]*ClickEvent, int64, error)

	// CountByAd returns the number of clicks recorded for one ad
	CountByAd(ctx context.Context, adID uint) (int64, error)
}

// BotUserRepository maintains the per-bot audience directory.
type BotUserRepository interface {
	// Upsert inserts or refreshes the (botID, telegramUserID) row
	Upsert(ctx context.Context, botUser *BotUser) error

	// Get retrieves one directory row
	Get(ctx context.Context, botID uint, telegramUserID int64) (*BotUser, error)

	// CountByBot returns the audience size for one bot
	CountByBot(ctx context.Context, botID uint) (int64, error)

	// CountActiveByBot counts users seen after the cutoff
	CountActiveByBot(ctx context.Context, botID uint, since time.Time) (int64, error)
}
