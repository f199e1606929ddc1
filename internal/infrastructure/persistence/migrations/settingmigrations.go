package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateSettingTables creates the platform_settings and audit_logs tables.
func MigrateSettingTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PlatformSettingModel{},
		&models.AuditLogModel{},
	)
}
