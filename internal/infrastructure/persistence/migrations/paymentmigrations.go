package migrations

import (
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// MigratePaymentTables creates the transactions, withdraw_requests and
// payment_reconciliations tables.
func MigratePaymentTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TransactionModel{},
		&models.WithdrawRequestModel{},
		&models.ReconciliationModel{},
	)
}
