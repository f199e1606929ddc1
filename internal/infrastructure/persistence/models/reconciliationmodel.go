package models

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// ReconciliationModel is the GORM model for gateway callbacks that could not
// be applied and need operator review.
type ReconciliationModel struct {
	ID           uint   `gorm:"primarykey"`
	Provider     string `gorm:"size:50;not null;index"`
	ProviderTxID string `gorm:"size:255;not null;index"`
	Method       string `gorm:"size:100;not null"`
	RawPayload   string `gorm:"type:text"`
	Resolved     bool   `gorm:"not null;default:false;index"`
	Note         string `gorm:"size:500"`
	CreatedAt    time.Time
}

// TableName returns the table name for ReconciliationModel
func (ReconciliationModel) TableName() string {
	return constants.TableReconciliations
}
