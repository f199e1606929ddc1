package migration

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// AutoMigrateModels returns every persistence model the platform owns, in
// dependency order so foreign-key tables come after the tables they reference.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.WalletModel{},
		&models.LedgerEntryModel{},
		&models.BotModel{},
		&models.BotUserModel{},
		&models.PricingTierModel{},
		&models.AdModel{},
		&models.ImpressionModel{},
		&models.ClickEventModel{},
		&models.TransactionModel{},
		&models.WithdrawRequestModel{},
		&models.ReconciliationModel{},
		&models.PlatformSettingModel{},
		&models.AuditLogModel{},
	}
}
