package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// ImpressionModel is the GORM model for delivered ad impressions. Rows are
// append-only and carry the revenue split frozen at delivery time.
type ImpressionModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	AdID           uint   `gorm:"index;not null"`
	BotID          uint   `gorm:"index;not null"`
	TelegramUserID int64  `gorm:"index;not null"`

	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`
	Username     string `gorm:"size:255"`
	LanguageCode string `gorm:"size:10"`
	Country      string `gorm:"size:100"`
	City         string `gorm:"size:100"`

	Revenue       decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	PlatformFee   decimal.Decimal `gorm:"type:decimal(20,6);not null"`
	BotOwnerEarns decimal.Decimal `gorm:"type:decimal(20,6);not null"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for ImpressionModel
func (ImpressionModel) TableName() string {
	return constants.TableImpressions
}
