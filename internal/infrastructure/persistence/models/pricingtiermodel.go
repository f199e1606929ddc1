package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// PricingTierModel is the GORM model for fixed impression packages.
type PricingTierModel struct {
	ID  uint   `gorm:"primarykey"`
	SID string `gorm:"column:sid;uniqueIndex;not null;size:50"`

	Name        string          `gorm:"size:255;not null"`
	Impressions int64           `gorm:"uniqueIndex;not null"`
	PriceUSD    decimal.Decimal `gorm:"type:decimal(20,6);not null"`

	IsActive  bool `gorm:"not null;default:true"`
	SortOrder int  `gorm:"not null;default:0"`

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PricingTierModel
func (PricingTierModel) TableName() string {
	return constants.TablePricingTiers
}

// BeforeCreate hook for setting initial version
func (m *PricingTierModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
