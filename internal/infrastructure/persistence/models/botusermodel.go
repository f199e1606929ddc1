package models

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// BotUserModel is the GORM model for per-bot audience members. One row per
// (bot, telegram user) pair, refreshed on every ad request.
type BotUserModel struct {
	ID             uint  `gorm:"primarykey"`
	BotID          uint  `gorm:"uniqueIndex:idx_bot_tg_user,priority:1;not null"`
	TelegramUserID int64 `gorm:"uniqueIndex:idx_bot_tg_user,priority:2;not null"`

	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`
	Username     string `gorm:"size:255"`
	LanguageCode string `gorm:"size:10"`
	Country      string `gorm:"size:100"`
	City         string `gorm:"size:100"`

	FirstSeenAt time.Time
	LastSeenAt  time.Time `gorm:"index"`
}

// TableName returns the table name for BotUserModel
func (BotUserModel) TableName() string {
	return constants.TableBotUsers
}
