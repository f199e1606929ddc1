package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type WalletRepository struct {
	db     *gorm.DB
	mapper *mappers.WalletMapper
}

func NewWalletRepository(gdb *gorm.DB) *WalletRepository {
	return &WalletRepository{db: gdb, mapper: mappers.NewWalletMapper()}
}

func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	model, err := r.mapper.ToModel(w)
	if err != nil {
		return fmt.Errorf("failed to map wallet: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	w.SetID(model.ID)
	return nil
}

func (r *WalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	model, err := r.mapper.ToModel(w)
	if err != nil {
		return fmt.Errorf("failed to map wallet: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.WalletModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"available":       model.Available,
			"reserved":        model.Reserved,
			"pending":         model.Pending,
			"total_deposited": model.TotalDeposited,
			"total_withdrawn": model.TotalWithdrawn,
			"total_earned":    model.TotalEarned,
			"total_spent":     model.TotalSpent,
			"version":         model.Version,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}

	return nil
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint) (*wallet.Wallet, error) {
	var model models.WalletModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WalletRepository) GetByUserIDForUpdate(ctx context.Context, userID uint) (*wallet.Wallet, error) {
	var model models.WalletModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForUpdate()).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WalletRepository) GetBySID(ctx context.Context, sid string) (*wallet.Wallet, error) {
	var model models.WalletModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

type LedgerRepository struct {
	db     *gorm.DB
	mapper *mappers.WalletMapper
}

func NewLedgerRepository(gdb *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: gdb, mapper: mappers.NewWalletMapper()}
}

func (r *LedgerRepository) Create(ctx context.Context, entry *wallet.LedgerEntry) error {
	model, err := r.mapper.LedgerEntryToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to map ledger entry: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *LedgerRepository) ListByUserID(ctx context.Context, userID uint, filter wallet.LedgerFilter) ([]*wallet.LedgerEntry, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.LedgerEntryModel{}).
		Where("user_id = ?", userID)

	if filter.EntryType != "" {
		query = query.Where("entry_type = ?", filter.EntryType)
	}
	if filter.RefType != "" {
		query = query.Where("ref_type = ?", filter.RefType)
	}
	if filter.DateFrom != "" {
		query = query.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("created_at <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var entryModels []*models.LedgerEntryModel
	if err := query.
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries, err := r.mapper.LedgerEntriesToDomain(entryModels)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *LedgerRepository) SumAmountByUserID(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LedgerEntryModel{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger amounts: %w", err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *LedgerRepository) GetByRef(ctx context.Context, refType, refID string) ([]*wallet.LedgerEntry, error) {
	var entryModels []*models.LedgerEntryModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("ref_type = ? AND ref_id = ?", refType, refID).
		Order("id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get ledger entries by ref: %w", err)
	}

	return r.mapper.LedgerEntriesToDomain(entryModels)
}

func (r *LedgerRepository) ExistsByTypeAndRef(ctx context.Context, entryType, refType, refID string) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.LedgerEntryModel{}).
		Where("entry_type = ? AND ref_type = ? AND ref_id = ?", entryType, refType, refID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ledger entry: %w", err)
	}

	return count > 0, nil
}
