package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines persistence for wallet aggregates.
type Repository interface {
	// Create persists a new wallet.
	Create(ctx context.Context, wallet *Wallet) error

	// Update persists wallet state changes.
	Update(ctx context.Context, wallet *Wallet) error

	// GetByUserID retrieves the wallet owned by the user.
	GetByUserID(ctx context.Context, userID uint) (*Wallet, error)

	// GetByUserIDForUpdate retrieves the wallet holding a row-level lock.
	// Must run inside a transaction; the lock serializes concurrent
	// operations on the same wallet.
	GetByUserIDForUpdate(ctx context.Context, userID uint) (*Wallet, error)

	// GetBySID retrieves a wallet by external SID.
	GetBySID(ctx context.Context, sid string) (*Wallet, error)
}

// LedgerFilter narrows and paginates ledger listings.
type LedgerFilter struct {
	Page      int
	PageSize  int
	EntryType string
	RefType   string
	DateFrom  string
	DateTo    string
}

// LedgerRepository defines persistence for the append-only audit trail.
type LedgerRepository interface {
	// Create appends an entry. Entries are never updated or deleted.
	Create(ctx context.Context, entry *LedgerEntry) error

	// ListByUserID returns a page of the user's entries, newest first.
	ListByUserID(ctx context.Context, userID uint, filter LedgerFilter) ([]*LedgerEntry, int64, error)

	// SumAmountByUserID returns the signed sum of all entry amounts for the
	// user, which must reconstruct the wallet total.
	SumAmountByUserID(ctx context.Context, userID uint) (decimal.Decimal, error)

	// GetByRef returns entries linked to a reference, oldest first.
	GetByRef(ctx context.Context, refType, refID string) ([]*LedgerEntry, error)

	// ExistsByTypeAndRef reports whether an entry of the type already exists
	// for the reference. Used to keep provider callbacks idempotent.
	ExistsByTypeAndRef(ctx context.Context, entryType, refType, refID string) (bool, error)
}
