package withdrawal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// WithdrawRequest is a payout request against earned balance. The wallet
// holds amount+fee in reserve from creation until an admin settles or
// releases it; netAmount (amount−fee) is what goes out on chain.
type WithdrawRequest struct {
	id          uint
	sid         string
	userID      uint
	coin        string
	network     vo.Network
	address     string
	amount      decimal.Decimal
	fee         decimal.Decimal
	netAmount   decimal.Decimal
	status      vo.WithdrawStatus
	approvedBy  *uint
	approvedAt  *time.Time
	completedAt *time.Time
	reason      string
	txHash      string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewWithdrawRequest validates the destination and builds a REQUESTED payout.
// Balance checks and the reserve itself belong to the wallet service.
func NewWithdrawRequest(userID uint, coin string, network vo.Network, address string, amount, fee decimal.Decimal) (*WithdrawRequest, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	coin = strings.ToUpper(strings.TrimSpace(coin))
	if coin == "" {
		return nil, ErrInvalidCoin
	}
	if !network.IsValid() {
		return nil, vo.ErrUnsupportedNetwork
	}
	address = strings.TrimSpace(address)
	if err := network.ValidateAddress(address); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fee.IsNegative() {
		return nil, ErrInvalidFee
	}
	netAmount := amount.Sub(fee)
	if !netAmount.IsPositive() {
		return nil, ErrNetAmountNotPositive
	}

	now := biztime.NowUTC()
	return &WithdrawRequest{
		sid:       id.NewWithdrawSID(),
		userID:    userID,
		coin:      coin,
		network:   network,
		address:   address,
		amount:    amount,
		fee:       fee,
		netAmount: netAmount,
		status:    vo.WithdrawStatusRequested,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Getters

func (w *WithdrawRequest) ID() uint                  { return w.id }
func (w *WithdrawRequest) SID() string               { return w.sid }
func (w *WithdrawRequest) UserID() uint              { return w.userID }
func (w *WithdrawRequest) Coin() string              { return w.coin }
func (w *WithdrawRequest) Network() vo.Network       { return w.network }
func (w *WithdrawRequest) Address() string           { return w.address }
func (w *WithdrawRequest) Amount() decimal.Decimal   { return w.amount }
func (w *WithdrawRequest) Fee() decimal.Decimal      { return w.fee }
func (w *WithdrawRequest) NetAmount() decimal.Decimal { return w.netAmount }
func (w *WithdrawRequest) Status() vo.WithdrawStatus { return w.status }
func (w *WithdrawRequest) ApprovedBy() *uint         { return w.approvedBy }
func (w *WithdrawRequest) ApprovedAt() *time.Time    { return w.approvedAt }
func (w *WithdrawRequest) CompletedAt() *time.Time   { return w.completedAt }
func (w *WithdrawRequest) Reason() string            { return w.reason }
func (w *WithdrawRequest) TxHash() string            { return w.txHash }
func (w *WithdrawRequest) CreatedAt() time.Time      { return w.createdAt }
func (w *WithdrawRequest) UpdatedAt() time.Time      { return w.updatedAt }

// ReservedAmount is what the wallet locks for this request: amount plus fee.
func (w *WithdrawRequest) ReservedAmount() decimal.Decimal {
	return w.amount.Add(w.fee)
}

// Transitions

// TakeForReview stages the request for manual inspection.
func (w *WithdrawRequest) TakeForReview() error {
	if err := w.status.TransitionTo(vo.WithdrawStatusPendingReview); err != nil {
		return err
	}
	w.updatedAt = biztime.NowUTC()
	return nil
}

// Approve records the reviewing admin and moves to APPROVED.
func (w *WithdrawRequest) Approve(adminID uint) error {
	if adminID == 0 {
		return ErrInvalidApprover
	}
	if err := w.status.TransitionTo(vo.WithdrawStatusApproved); err != nil {
		return err
	}
	now := biztime.NowUTC()
	w.approvedBy = &adminID
	w.approvedAt = &now
	w.updatedAt = now
	return nil
}

// Complete settles an approved request; txHash is the on-chain reference.
func (w *WithdrawRequest) Complete(txHash string) error {
	if err := w.status.TransitionTo(vo.WithdrawStatusCompleted); err != nil {
		return err
	}
	now := biztime.NowUTC()
	w.txHash = txHash
	w.completedAt = &now
	w.updatedAt = now
	return nil
}

// Reject declines the request; the reserve goes back to the wallet.
func (w *WithdrawRequest) Reject(adminID uint, reason string) error {
	if adminID == 0 {
		return ErrInvalidApprover
	}
	if reason == "" {
		return ErrReasonRequired
	}
	if err := w.status.TransitionTo(vo.WithdrawStatusRejected); err != nil {
		return err
	}
	now := biztime.NowUTC()
	w.approvedBy = &adminID
	w.reason = reason
	w.updatedAt = now
	return nil
}

// Cancel lets the owner withdraw the request before review starts.
func (w *WithdrawRequest) Cancel() error {
	if w.status != vo.WithdrawStatusRequested {
		return ErrNotCancellable
	}
	if err := w.status.TransitionTo(vo.WithdrawStatusCancelled); err != nil {
		return err
	}
	w.updatedAt = biztime.NowUTC()
	return nil
}

// SetID sets the request ID after persistence.
func (w *WithdrawRequest) SetID(id uint) {
	w.id = id
}

// WithdrawReconstructParams carries persisted state back into the aggregate.
type WithdrawReconstructParams struct {
	ID          uint
	SID         string
	UserID      uint
	Coin        string
	Network     vo.Network
	Address     string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	NetAmount   decimal.Decimal
	Status      vo.WithdrawStatus
	ApprovedBy  *uint
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	Reason      string
	TxHash      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReconstructWithdrawRequest rebuilds a WithdrawRequest from persistence.
func ReconstructWithdrawRequest(params WithdrawReconstructParams) *WithdrawRequest {
	return &WithdrawRequest{
		id:          params.ID,
		sid:         params.SID,
		userID:      params.UserID,
		coin:        params.Coin,
		network:     params.Network,
		address:     params.Address,
		amount:      params.Amount,
		fee:         params.Fee,
		netAmount:   params.NetAmount,
		status:      params.Status,
		approvedBy:  params.ApprovedBy,
		approvedAt:  params.ApprovedAt,
		completedAt: params.CompletedAt,
		reason:      params.Reason,
		txHash:      params.TxHash,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
	}
}
