package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// PlatformSettingModel is the GORM model for runtime-tunable settings.
type PlatformSettingModel struct {
	ID  uint   `gorm:"primarykey"`
	SID string `gorm:"column:sid;uniqueIndex;not null;size:50"`

	Category string `gorm:"size:50;not null;index"`
	Key      string `gorm:"uniqueIndex;not null;size:100"`
	Value    string `gorm:"size:1000;not null"`

	ValueType   string `gorm:"size:20;not null"`
	Description string `gorm:"size:500"`
	UpdatedBy   uint

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PlatformSettingModel
func (PlatformSettingModel) TableName() string {
	return constants.TablePlatformSettings
}

// BeforeCreate hook for setting initial version
func (m *PlatformSettingModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
