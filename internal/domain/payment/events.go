package payment

import (
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
)

type DepositSucceededEvent struct {
	TransactionID  uint
	TransactionSID string
	UserID         uint
	Provider       vo.Provider
	Amount         decimal.Decimal
	OccurredAt     time.Time
}

func NewDepositSucceededEvent(tx *Transaction) *DepositSucceededEvent {
	return &DepositSucceededEvent{
		TransactionID:  tx.ID(),
		TransactionSID: tx.SID(),
		UserID:         tx.UserID(),
		Provider:       tx.Provider(),
		Amount:         tx.Amount(),
		OccurredAt:     time.Now(),
	}
}

type DepositFailedEvent struct {
	TransactionID  uint
	TransactionSID string
	UserID         uint
	Reason         string
	OccurredAt     time.Time
}

func NewDepositFailedEvent(tx *Transaction, reason string) *DepositFailedEvent {
	return &DepositFailedEvent{
		TransactionID:  tx.ID(),
		TransactionSID: tx.SID(),
		UserID:         tx.UserID(),
		Reason:         reason,
		OccurredAt:     time.Now(),
	}
}
