package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateBotTables creates the bots and bot_users tables.
func MigrateBotTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.BotModel{},
		&models.BotUserModel{},
	)
}
