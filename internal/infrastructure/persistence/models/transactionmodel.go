package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// TransactionModel is the GORM model for payment transactions. The
// provider/provider_tx_id pair is unique so a replayed gateway callback can
// never mint a second row for the same external transaction.
type TransactionModel struct {
	ID     uint   `gorm:"primarykey"`
	SID    string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	UserID uint   `gorm:"index;not null"`

	Type         string  `gorm:"size:50;not null;index"`
	Provider     string  `gorm:"size:50;not null;uniqueIndex:idx_provider_tx,priority:1"`
	ProviderTxID *string `gorm:"size:255;uniqueIndex:idx_provider_tx,priority:2"`

	Coin    string `gorm:"size:20"`
	Network string `gorm:"size:20"`

	Amount decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Fee    decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	Status string `gorm:"size:50;not null;index;default:'PENDING'"`

	ProviderBoundAt *time.Time
	PerformedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    *int
	FailReason      string `gorm:"size:500"`

	Metadata JSONB `gorm:"type:json"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for TransactionModel
func (TransactionModel) TableName() string {
	return constants.TableTransactions
}

// BeforeCreate hook for setting initial version
func (m *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
