package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// LedgerEntryModel is the GORM model for wallet ledger rows. Entries are
// append-only: no UpdatedAt, no soft delete, no version.
type LedgerEntryModel struct {
	ID     uint   `gorm:"primarykey"`
	SID    string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	UserID uint   `gorm:"index;not null"`

	EntryType string          `gorm:"size:50;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,6);not null"`

	RefID       string `gorm:"size:50;index"`
	RefType     string `gorm:"size:50"`
	Description string `gorm:"size:500"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for LedgerEntryModel
func (LedgerEntryModel) TableName() string {
	return constants.TableLedgerEntries
}
