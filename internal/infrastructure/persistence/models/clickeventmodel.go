package models

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// ClickEventModel is the GORM model for tracked button clicks.
type ClickEventModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	AdID           uint   `gorm:"index;not null"`
	BotID          uint   `gorm:"index;not null"`
	TelegramUserID int64  `gorm:"index;not null"`

	ButtonIndex int    `gorm:"not null;default:0"`
	OriginalURL string `gorm:"size:1000;not null"`
	Clicked     bool   `gorm:"not null;default:true"`
	ClickedAt   time.Time
	IPAddress   string `gorm:"size:45"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for ClickEventModel
func (ClickEventModel) TableName() string {
	return constants.TableClickEvents
}
