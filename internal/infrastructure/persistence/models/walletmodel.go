package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// WalletModel is the GORM model for per-user balances.
type WalletModel struct {
	ID     uint   `gorm:"primarykey"`
	SID    string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	UserID uint   `gorm:"uniqueIndex;not null"`

	Available decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	Reserved  decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	Pending   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	TotalDeposited decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	TotalWithdrawn decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	TotalEarned    decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	TotalSpent     decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for WalletModel
func (WalletModel) TableName() string {
	return constants.TableWallets
}

// BeforeCreate hook for setting initial version
func (m *WalletModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
