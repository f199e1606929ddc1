package payment

import (
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// Transaction is one external payment leg: a deposit initiated by the user
// and driven to a terminal state by gateway callbacks, a settled withdrawal,
// or an admin adjustment. Gateways bind their transaction id once and every
// later callback with the same id must observe the same terminal state.
type Transaction struct {
	id           uint
	sid          string
	userID       uint
	txType       vo.TransactionType
	provider     vo.Provider
	providerTxID *string
	coin         string
	network      string
	amount       decimal.Decimal
	fee          decimal.Decimal
	status       vo.TransactionStatus

	// gateway protocol bookkeeping, stamped once and echoed on repeats
	providerBoundAt *time.Time
	performedAt     *time.Time
	cancelledAt     *time.Time
	cancelReason    *int
	failReason      string

	metadata map[string]interface{}

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewDepositTransaction opens a PENDING deposit leg for an external gateway.
func NewDepositTransaction(userID uint, provider vo.Provider, amount decimal.Decimal) (*Transaction, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if !provider.IsExternal() {
		return nil, ErrInvalidProvider
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := biztime.NowUTC()
	return &Transaction{
		sid:       id.NewTransactionSID(),
		userID:    userID,
		txType:    vo.TransactionTypeDeposit,
		provider:  provider,
		amount:    amount,
		fee:       decimal.Zero,
		status:    vo.TransactionStatusPending,
		metadata:  make(map[string]interface{}),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewCryptoDeposit opens a PENDING crypto deposit with coin and network set.
func NewCryptoDeposit(userID uint, coin, network string, amount decimal.Decimal) (*Transaction, error) {
	tx, err := NewDepositTransaction(userID, vo.ProviderCryptopay, amount)
	if err != nil {
		return nil, err
	}
	if coin == "" || network == "" {
		return nil, ErrInvalidNetwork
	}
	tx.coin = coin
	tx.network = network
	return tx, nil
}

// NewWithdrawTransaction records the payout leg of an approved withdrawal.
func NewWithdrawTransaction(userID uint, amount, fee decimal.Decimal, coin, network string) (*Transaction, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fee.IsNegative() {
		return nil, ErrInvalidAmount
	}

	now := biztime.NowUTC()
	return &Transaction{
		sid:       id.NewTransactionSID(),
		userID:    userID,
		txType:    vo.TransactionTypeWithdraw,
		provider:  vo.ProviderInternal,
		coin:      coin,
		network:   network,
		amount:    amount,
		fee:       fee,
		status:    vo.TransactionStatusPending,
		metadata:  make(map[string]interface{}),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewAdjustmentTransaction records a manual admin balance correction. The
// amount keeps its sign; negative means funds were taken.
func NewAdjustmentTransaction(userID uint, amount decimal.Decimal, note string) (*Transaction, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	now := biztime.NowUTC()
	tx := &Transaction{
		sid:       id.NewTransactionSID(),
		userID:    userID,
		txType:    vo.TransactionTypeAdjustment,
		provider:  vo.ProviderInternal,
		amount:    amount,
		fee:       decimal.Zero,
		status:    vo.TransactionStatusPending,
		metadata:  make(map[string]interface{}),
		createdAt: now,
		updatedAt: now,
	}
	if note != "" {
		tx.metadata["note"] = note
	}
	return tx, nil
}

// BindProvider attaches the gateway's transaction id. The first bind wins;
// a repeat with the same id is a no-op so callbacks stay idempotent, a
// different id on a non-final leg is refused.
func (t *Transaction) BindProvider(providerTxID string) error {
	if providerTxID == "" {
		return ErrInvalidProviderTxID
	}
	if t.providerTxID != nil {
		if *t.providerTxID == providerTxID {
			return nil
		}
		return ErrProviderTxMismatch
	}
	if t.status.IsFinal() {
		return ErrTransactionFinal
	}

	now := biztime.NowUTC()
	t.providerTxID = &providerTxID
	t.providerBoundAt = &now
	t.updatedAt = now
	t.version++
	return nil
}

// MarkSuccess settles the leg. Calling it again is a no-op with the original
// perform time preserved, so duplicate gateway callbacks reply identically.
func (t *Transaction) MarkSuccess() error {
	if t.status.IsSuccess() {
		return nil
	}
	if t.status.IsFinal() {
		return ErrTransactionFinal
	}

	now := biztime.NowUTC()
	t.status = vo.TransactionStatusSuccess
	t.performedAt = &now
	t.updatedAt = now
	t.version++
	return nil
}

// MarkFailed cancels a leg that has not settled. A settled leg is refused so
// adapters can answer with their cannot-cancel code; repeating the cancel is
// a no-op with the original cancel time preserved.
func (t *Transaction) MarkFailed(reason string, cancelReason *int) error {
	if t.status == vo.TransactionStatusFailed {
		return nil
	}
	if t.status.IsSuccess() {
		return ErrTransactionCompleted
	}

	now := biztime.NowUTC()
	t.status = vo.TransactionStatusFailed
	t.failReason = reason
	t.cancelReason = cancelReason
	t.cancelledAt = &now
	t.updatedAt = now
	t.version++
	return nil
}

// MarkExpired fails a stale PENDING leg; final legs are left alone.
func (t *Transaction) MarkExpired() error {
	if t.status.IsFinal() {
		return nil
	}
	return t.MarkFailed("expired", nil)
}

// IsStale reports whether a PENDING leg has outlived the given ttl.
func (t *Transaction) IsStale(ttl time.Duration) bool {
	return t.status.IsPending() && biztime.NowUTC().After(t.createdAt.Add(ttl))
}

// AmountMatches checks a callback amount against the leg within tolerance.
func (t *Transaction) AmountMatches(amount decimal.Decimal, tolerance decimal.Decimal) bool {
	return t.amount.Sub(amount).Abs().LessThanOrEqual(tolerance)
}

// NetAmount is what lands in the wallet after the fee.
func (t *Transaction) NetAmount() decimal.Decimal {
	return t.amount.Sub(t.fee)
}

func (t *Transaction) SetMetadata(key string, value interface{}) {
	if t.metadata == nil {
		t.metadata = make(map[string]interface{})
	}
	t.metadata[key] = value
	t.updatedAt = biztime.NowUTC()
}

// Getters

func (t *Transaction) ID() uint                    { return t.id }
func (t *Transaction) SID() string                 { return t.sid }
func (t *Transaction) UserID() uint                { return t.userID }
func (t *Transaction) Type() vo.TransactionType    { return t.txType }
func (t *Transaction) Provider() vo.Provider       { return t.provider }
func (t *Transaction) ProviderTxID() *string       { return t.providerTxID }
func (t *Transaction) Coin() string                { return t.coin }
func (t *Transaction) Network() string             { return t.network }
func (t *Transaction) Amount() decimal.Decimal     { return t.amount }
func (t *Transaction) Fee() decimal.Decimal        { return t.fee }
func (t *Transaction) Status() vo.TransactionStatus { return t.status }
func (t *Transaction) ProviderBoundAt() *time.Time { return t.providerBoundAt }
func (t *Transaction) PerformedAt() *time.Time     { return t.performedAt }
func (t *Transaction) CancelledAt() *time.Time     { return t.cancelledAt }
func (t *Transaction) CancelReason() *int          { return t.cancelReason }
func (t *Transaction) FailReason() string          { return t.failReason }
func (t *Transaction) Metadata() map[string]interface{} { return t.metadata }
func (t *Transaction) Version() int                { return t.version }
func (t *Transaction) CreatedAt() time.Time        { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time        { return t.updatedAt }

// SetID sets the transaction ID after persistence.
func (t *Transaction) SetID(id uint) {
	t.id = id
}

// TransactionReconstructParams carries persisted state back into the aggregate.
type TransactionReconstructParams struct {
	ID              uint
	SID             string
	UserID          uint
	Type            vo.TransactionType
	Provider        vo.Provider
	ProviderTxID    *string
	Coin            string
	Network         string
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	Status          vo.TransactionStatus
	ProviderBoundAt *time.Time
	PerformedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    *int
	FailReason      string
	Metadata        map[string]interface{}
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructTransaction rebuilds a Transaction from persistence.
func ReconstructTransaction(params TransactionReconstructParams) *Transaction {
	metadata := params.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Transaction{
		id:              params.ID,
		sid:             params.SID,
		userID:          params.UserID,
		txType:          params.Type,
		provider:        params.Provider,
		providerTxID:    params.ProviderTxID,
		coin:            params.Coin,
		network:         params.Network,
		amount:          params.Amount,
		fee:             params.Fee,
		status:          params.Status,
		providerBoundAt: params.ProviderBoundAt,
		performedAt:     params.PerformedAt,
		cancelledAt:     params.CancelledAt,
		cancelReason:    params.CancelReason,
		failReason:      params.FailReason,
		metadata:        metadata,
		version:         params.Version,
		createdAt:       params.CreatedAt,
		updatedAt:       params.UpdatedAt,
	}
}
