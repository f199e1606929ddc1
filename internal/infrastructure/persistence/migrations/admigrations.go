package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateAdTables creates the pricing_tiers and ads tables.
func MigrateAdTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PricingTierModel{},
		&models.AdModel{},
	)
}
