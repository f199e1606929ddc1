package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateUserTables creates the users table.
func MigrateUserTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
	)
}
