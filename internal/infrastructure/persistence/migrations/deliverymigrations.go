package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateDeliveryTables creates the impressions and click_events tables.
func MigrateDeliveryTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ImpressionModel{},
		&models.ClickEventModel{},
	)
}
