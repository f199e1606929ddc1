package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// WithdrawRequestModel is the GORM model for withdrawal requests.
type WithdrawRequestModel struct {
	ID     uint   `gorm:"primarykey"`
	SID    string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	UserID uint   `gorm:"index;not null"`

	Coin    string `gorm:"size:20;not null"`
	Network string `gorm:"size:20;not null"`
	Address string `gorm:"size:255;not null"`

	Amount    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Fee       decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	NetAmount decimal.Decimal `gorm:"type:decimal(20,6);not null"`

	Status string `gorm:"size:50;not null;index;default:'REQUESTED'"`

	ApprovedBy  *uint
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	Reason      string `gorm:"size:500"`
	TxHash      string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName returns the table name for WithdrawRequestModel
func (WithdrawRequestModel) TableName() string {
	return constants.TableWithdrawRequests
}
