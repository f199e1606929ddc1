package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// UserModel is the GORM model for accounts.
type UserModel struct {
	ID         uint   `gorm:"primarykey"`
	SID        string `gorm:"column:sid;uniqueIndex;not null;size:50"`
	TelegramID int64  `gorm:"uniqueIndex;not null"`

	Username  string `gorm:"size:255;index"`
	FirstName string `gorm:"size:255;not null"`
	LastName  string `gorm:"size:255"`

	Role  string      `gorm:"size:50;not null;default:'advertiser'"`
	Roles StringArray `gorm:"type:json"`

	IsActive  bool   `gorm:"not null;default:true"`
	IsBanned  bool   `gorm:"not null;default:false"`
	BanReason string `gorm:"size:500"`

	Locale      string `gorm:"size:10;not null;default:'en'"`
	LastLoginAt *time.Time

	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for setting initial version
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
