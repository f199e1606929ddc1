package withdrawal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
)

// ListFilter narrows withdrawal listings.
type ListFilter struct {
	Page     int
	PageSize int
	UserID   *uint
	Status   *vo.WithdrawStatus
}

// Repository defines withdrawal persistence operations.
type Repository interface {
	// Create persists a new withdrawal request
	Create(ctx context.Context, w *WithdrawRequest) error

	// Update persists changes to an existing request
	Update(ctx context.Context, w *WithdrawRequest) error

	// GetByID retrieves a request by internal ID
	GetByID(ctx context.Context, id uint) (*WithdrawRequest, error)

	// GetBySID retrieves a request by short ID
	GetBySID(ctx context.Context, sid string) (*WithdrawRequest, error)

	// GetBySIDForUpdate retrieves a request by short ID holding a row lock
	GetBySIDForUpdate(ctx context.Context, sid string) (*WithdrawRequest, error)

	// List returns requests matching the filter with total count
	List(ctx context.Context, filter ListFilter) ([]*WithdrawRequest, int64, error)

	// SumAmountByUserSince sums request amounts for a user created at or
	// after the cutoff, restricted to the given statuses. Used for the
	// daily cap.
	SumAmountByUserSince(ctx context.Context, userID uint, since time.Time, statuses []vo.WithdrawStatus) (decimal.Decimal, error)
}
