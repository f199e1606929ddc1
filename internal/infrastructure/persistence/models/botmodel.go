package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// BotModel is the GORM model for registered Telegram bots.
type BotModel struct {
	ID            uint   `gorm:"primarykey"`
	SID           string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	OwnerID       uint   `gorm:"index;not null"`
	TelegramBotID int64  `gorm:"uniqueIndex;not null"`

	Username    string `gorm:"size:255;not null;index"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000"`

	TokenEncrypted string `gorm:"size:500;not null"`
	APIKeyHash     string `gorm:"size:128;not null;index"`
	APIKeyIssuedAt time.Time
	APIKeyRevoked  bool `gorm:"not null;default:false"`

	Status    string `gorm:"size:50;not null;index;default:'PENDING'"`
	IsPaused  bool   `gorm:"not null;default:false"`
	Monetized bool   `gorm:"not null;default:false"`

	Category string `gorm:"size:100"`
	Language string `gorm:"size:10"`

	TotalMembers  int64 `gorm:"not null;default:0"`
	ActiveMembers int64 `gorm:"not null;default:0"`

	BlockedCategories StringArray `gorm:"type:json"`
	FrequencyMinutes  int         `gorm:"not null;default:180"`

	TotalEarnings   decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`
	PendingEarnings decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0"`

	RejectReason  string `gorm:"size:500"`
	SuspendReason string `gorm:"size:500"`
	LastServedAt  *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for BotModel
func (BotModel) TableName() string {
	return constants.TableBots
}

// BeforeCreate hook for setting initial version
func (m *BotModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// BeforeUpdate hook for optimistic locking
func (m *BotModel) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("version", m.Version+1)
	return nil
}
