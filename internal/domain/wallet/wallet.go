package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// Wallet is the per-user balance aggregate. Money lives in three buckets:
// available (freely spendable), reserved (escrowed for ads or withdrawals)
// and pending (deposits not yet settled by the provider). Lifetime totals are
// running counters and never decrease.
//
// All mutations go through the bucket methods below so that no bucket can go
// negative and every move is paired with exactly one ledger entry by the
// wallet service.
type Wallet struct {
	id     uint
	sid    string
	userID uint

	available decimal.Decimal
	reserved  decimal.Decimal
	pending   decimal.Decimal

	totalDeposited decimal.Decimal
	totalWithdrawn decimal.Decimal
	totalEarned    decimal.Decimal
	totalSpent     decimal.Decimal

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewWallet creates a zero-initialized wallet for the user.
func NewWallet(userID uint) (*Wallet, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	return &Wallet{
		sid:            id.NewWalletSID(),
		userID:         userID,
		available:      decimal.Zero,
		reserved:       decimal.Zero,
		pending:        decimal.Zero,
		totalDeposited: decimal.Zero,
		totalWithdrawn: decimal.Zero,
		totalEarned:    decimal.Zero,
		totalSpent:     decimal.Zero,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Credit adds a settled deposit to the available bucket.
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	w.available = w.available.Add(amount)
	w.totalDeposited = w.totalDeposited.Add(amount)
	w.touch()
	return nil
}

// CreditEarnings adds bot owner revenue to the available bucket.
func (w *Wallet) CreditEarnings(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	w.available = w.available.Add(amount)
	w.totalEarned = w.totalEarned.Add(amount)
	w.touch()
	return nil
}

// CreditRefund returns unspent ad budget to the available bucket after the
// spend was already confirmed. Lifetime totals stay as they are; the ledger
// entry carries the audit trail.
func (w *Wallet) CreditRefund(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	w.available = w.available.Add(amount)
	w.touch()
	return nil
}

// Debit removes money from the available bucket as platform spend.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	w.available = w.available.Sub(amount)
	w.totalSpent = w.totalSpent.Add(amount)
	w.touch()
	return nil
}

// Reserve moves money from available into the reserved bucket. Used both for
// ad budget escrow and withdrawal holds; the caller records which via the
// ledger entry type.
func (w *Wallet) Reserve(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	w.available = w.available.Sub(amount)
	w.reserved = w.reserved.Add(amount)
	w.touch()
	return nil
}

// ReleaseReserved returns escrowed money to the available bucket.
func (w *Wallet) ReleaseReserved(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.reserved.LessThan(amount) {
		return ErrInsufficientReserved
	}

	w.reserved = w.reserved.Sub(amount)
	w.available = w.available.Add(amount)
	w.touch()
	return nil
}

// ConfirmSpent settles escrowed money as ad spend. The money leaves the
// wallet for good.
func (w *Wallet) ConfirmSpent(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.reserved.LessThan(amount) {
		return ErrInsufficientReserved
	}

	w.reserved = w.reserved.Sub(amount)
	w.totalSpent = w.totalSpent.Add(amount)
	w.touch()
	return nil
}

// ConfirmWithdrawn settles escrowed money as an executed payout.
func (w *Wallet) ConfirmWithdrawn(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.reserved.LessThan(amount) {
		return ErrInsufficientReserved
	}

	w.reserved = w.reserved.Sub(amount)
	w.totalWithdrawn = w.totalWithdrawn.Add(amount)
	w.touch()
	return nil
}

// AddPending records an unsettled deposit.
func (w *Wallet) AddPending(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	w.pending = w.pending.Add(amount)
	w.touch()
	return nil
}

// ConfirmPending settles a pending deposit into the available bucket.
func (w *Wallet) ConfirmPending(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.pending.LessThan(amount) {
		return ErrInsufficientPending
	}

	w.pending = w.pending.Sub(amount)
	w.available = w.available.Add(amount)
	w.totalDeposited = w.totalDeposited.Add(amount)
	w.touch()
	return nil
}

// CancelPending drops a pending deposit that the provider failed or reversed.
func (w *Wallet) CancelPending(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if w.pending.LessThan(amount) {
		return ErrInsufficientPending
	}

	w.pending = w.pending.Sub(amount)
	w.touch()
	return nil
}

// Adjust applies a signed manual correction to the available bucket.
// Lifetime totals are left alone; the ledger entry carries the audit trail.
func (w *Wallet) Adjust(amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	next := w.available.Add(amount)
	if next.IsNegative() {
		return ErrInsufficientFunds
	}

	w.available = next
	w.touch()
	return nil
}

// Total returns the full wallet balance across all buckets. The sum of all
// ledger entry amounts for the user reconstructs this value.
func (w *Wallet) Total() decimal.Decimal {
	return w.available.Add(w.reserved).Add(w.pending)
}

// HasAvailable reports whether the available bucket covers the amount.
func (w *Wallet) HasAvailable(amount decimal.Decimal) bool {
	return w.available.GreaterThanOrEqual(amount)
}

func (w *Wallet) touch() {
	w.updatedAt = biztime.NowUTC()
	w.version++
}

func (w *Wallet) ID() uint {
	return w.id
}

func (w *Wallet) SID() string {
	return w.sid
}

func (w *Wallet) UserID() uint {
	return w.userID
}

func (w *Wallet) Available() decimal.Decimal {
	return w.available
}

func (w *Wallet) Reserved() decimal.Decimal {
	return w.reserved
}

func (w *Wallet) Pending() decimal.Decimal {
	return w.pending
}

func (w *Wallet) TotalDeposited() decimal.Decimal {
	return w.totalDeposited
}

func (w *Wallet) TotalWithdrawn() decimal.Decimal {
	return w.totalWithdrawn
}

func (w *Wallet) TotalEarned() decimal.Decimal {
	return w.totalEarned
}

func (w *Wallet) TotalSpent() decimal.Decimal {
	return w.totalSpent
}

func (w *Wallet) Version() int {
	return w.version
}

func (w *Wallet) CreatedAt() time.Time {
	return w.createdAt
}

func (w *Wallet) UpdatedAt() time.Time {
	return w.updatedAt
}

// SetID sets the wallet ID after persistence (used by repository after Create)
func (w *Wallet) SetID(id uint) {
	w.id = id
}

// WalletReconstructParams carries persisted state for rebuilding a Wallet.
type WalletReconstructParams struct {
	ID             uint
	SID            string
	UserID         uint
	Available      decimal.Decimal
	Reserved       decimal.Decimal
	Pending        decimal.Decimal
	TotalDeposited decimal.Decimal
	TotalWithdrawn decimal.Decimal
	TotalEarned    decimal.Decimal
	TotalSpent     decimal.Decimal
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructWallet rebuilds a Wallet from persistence without validation.
func ReconstructWallet(params WalletReconstructParams) *Wallet {
	return &Wallet{
		id:             params.ID,
		sid:            params.SID,
		userID:         params.UserID,
		available:      params.Available,
		reserved:       params.Reserved,
		pending:        params.Pending,
		totalDeposited: params.TotalDeposited,
		totalWithdrawn: params.TotalWithdrawn,
		totalEarned:    params.TotalEarned,
		totalSpent:     params.TotalSpent,
		version:        params.Version,
		createdAt:      params.CreatedAt,
		updatedAt:      params.UpdatedAt,
	}
}
