package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AdModel is the GORM model for ad campaigns. Buttons, poll and active hours
// are stored as JSON documents; targeting lists get their own JSON columns so
// the ad server can unpack them without a second lookup.
type AdModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	AdvertiserID uint   `gorm:"index;not null"`

	ContentType string         `gorm:"size:50;not null"`
	Text        string         `gorm:"type:text"`
	HTMLContent string         `gorm:"type:text"`
	MediaURL    string         `gorm:"size:1000"`
	MediaType   string         `gorm:"size:50"`
	Buttons     datatypes.JSON `gorm:"type:json"`
	Poll        datatypes.JSON `gorm:"type:json"`
	Category    string         `gorm:"size:100;index"`

	SelectedTierID    *uint
	TargetImpressions int64           `gorm:"not null;default:0"`
	BaseCPM           decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	CPMBid            decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	FinalCPM          decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	TotalCost         decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	PlatformFee       decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	BotOwnerRevenue   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	DeliveredImpressions int64           `gorm:"not null;default:0"`
	RemainingBudget      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	AISegments      StringArray `gorm:"type:json"`
	SpecificBotIDs  UintArray   `gorm:"type:json"`
	ExcludedUserIDs Int64Array  `gorm:"type:json"`
	Languages       StringArray `gorm:"type:json"`

	ScheduleStart *time.Time
	ScheduleEnd   *time.Time
	Timezone      string         `gorm:"size:64"`
	ActiveDays    IntArray       `gorm:"type:json"`
	ActiveHours   datatypes.JSON `gorm:"type:json"`

	Status          string `gorm:"size:50;not null;index;default:'DRAFT'"`
	ModeratedBy     *uint
	ModeratedAt     *time.Time
	RejectionReason string `gorm:"size:500"`
	IsArchived      bool   `gorm:"not null;default:false;index"`

	StartedAt   *time.Time
	CompletedAt *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for AdModel
func (AdModel) TableName() string {
	return constants.TableAds
}

// BeforeCreate hook for setting initial version
func (m *AdModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
