package payment

import (
	"context"
	"time"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
)

// ListFilter narrows transaction listings.
type ListFilter struct {
	Page     int
	PageSize int
	UserID   *uint
	Type     *vo.TransactionType
	Provider *vo.Provider
	Status   *vo.TransactionStatus
	From     *time.Time
	To       *time.Time
}

// Repository defines transaction persistence operations.
type Repository interface {
	// Create persists a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// Update persists changes to an existing transaction
	Update(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by internal ID
	GetByID(ctx context.Context, id uint) (*Transaction, error)

	// GetBySID retrieves a transaction by short ID
	GetBySID(ctx context.Context, sid string) (*Transaction, error)

	// GetBySIDForUpdate retrieves a transaction by short ID holding a row lock
	GetBySIDForUpdate(ctx context.Context, sid string) (*Transaction, error)

	// GetByProviderTxID retrieves a transaction bound to a gateway id
	GetByProviderTxID(ctx context.Context, provider vo.Provider, providerTxID string) (*Transaction, error)

	// GetByProviderTxIDForUpdate is GetByProviderTxID holding a row lock
	GetByProviderTxIDForUpdate(ctx context.Context, provider vo.Provider, providerTxID string) (*Transaction, error)

	// List returns transactions matching the filter with total count
	List(ctx context.Context, filter ListFilter) ([]*Transaction, int64, error)

	// ListByTimeRange returns a provider's transactions created in [from, to],
	// oldest first, for gateway statement queries
	ListByTimeRange(ctx context.Context, provider vo.Provider, from, to time.Time) ([]*Transaction, error)

	// ListStalePending returns PENDING transactions older than the cutoff
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*Transaction, error)
}

// ReconciliationRepository stores raw callbacks that matched no transaction.
type ReconciliationRepository interface {
	// Create persists an unmatched callback payload
	Create(ctx context.Context, entry *ReconciliationEntry) error

	// ListUnresolved returns entries awaiting manual review
	ListUnresolved(ctx context.Context, limit int) ([]*ReconciliationEntry, error)

	// MarkResolved flags an entry as handled
	MarkResolved(ctx context.Context, id uint, note string) error
}
