package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigrateWalletTables creates the wallets and ledger_entries tables.
func MigrateWalletTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WalletModel{},
		&models.LedgerEntryModel{},
	)
}
