package ad

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter narrows and paginates ad listings.
type ListFilter struct {
	Page         int
	PageSize     int
	AdvertiserID uint
	Status       string
	Category     string
	Archived     *bool
	OrderBy      string
	Order        string
}

// Repository defines persistence for ad aggregates.
type Repository interface {
	Create(ctx context.Context, ad *Ad) error
	Update(ctx context.Context, ad *Ad) error
	GetByID(ctx context.Context, id uint) (*Ad, error)
	GetBySID(ctx context.Context, sid string) (*Ad, error)
	List(ctx context.Context, filter ListFilter) ([]*Ad, int64, error)

	// ListPendingReview returns ads waiting for moderation, oldest first.
	ListPendingReview(ctx context.Context, limit, offset int) ([]*Ad, int64, error)

	// ListDeliverable returns RUNNING ads that coarsely qualify for delivery
	// at the instant: budget left, impressions left and schedule window open.
	// Day-of-week, hour and targeting filters are applied by the caller.
	ListDeliverable(ctx context.Context, now time.Time) ([]*Ad, error)

	// ApplyDelivery atomically accounts one impression: increments the
	// delivered counter and decrements the remaining budget, but only while
	// the ad is RUNNING, under target and holds at least the revenue amount.
	// Returns false without error when the guard fails, which means the ad
	// is exhausted or was taken by a concurrent delivery.
	ApplyDelivery(ctx context.Context, adID uint, revenue decimal.Decimal) (bool, error)

	// ListScheduledToStart returns SCHEDULED ads whose window has opened.
	ListScheduledToStart(ctx context.Context, now time.Time) ([]*Ad, error)

	// ListRunningPastEnd returns RUNNING or PAUSED ads whose window has closed.
	ListRunningPastEnd(ctx context.Context, now time.Time) ([]*Ad, error)

	// CountByStatus returns how many ads sit in each status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
