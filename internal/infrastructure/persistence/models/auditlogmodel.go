package models

import (
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/constants"
)

// AuditLogModel is the GORM model for moderation audit rows. Append-only.
type AuditLogModel struct {
	ID          uint   `gorm:"primarykey"`
	ModeratorID uint   `gorm:"index;not null"`
	Action      string `gorm:"size:50;not null;index"`
	EntityType  string `gorm:"size:50;not null;index:idx_audit_entity,priority:1"`
	EntityID    string `gorm:"size:50;not null;index:idx_audit_entity,priority:2"`
	Metadata    JSONB  `gorm:"type:json"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName returns the table name for AuditLogModel
func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
