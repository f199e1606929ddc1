package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type TransactionRepository struct {
	db     *gorm.DB
	mapper *mappers.TransactionMapper
}

func NewTransactionRepository(gdb *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: gdb, mapper: mappers.NewTransactionMapper()}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *payment.Transaction) error {
	model, err := r.mapper.ToModel(tx)
	if err != nil {
		return fmt.Errorf("failed to map transaction: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	tx.SetID(model.ID)
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	model, err := r.mapper.ToModel(tx)
	if err != nil {
		return fmt.Errorf("failed to map transaction: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"provider_tx_id":    model.ProviderTxID,
			"status":            model.Status,
			"provider_bound_at": model.ProviderBoundAt,
			"performed_at":      model.PerformedAt,
			"cancelled_at":      model.CancelledAt,
			"cancel_reason":     model.CancelReason,
			"fail_reason":       model.FailReason,
			"metadata":          model.Metadata,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}

	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uint) (*payment.Transaction, error) {
	var model models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TransactionRepository) GetBySID(ctx context.Context, sid string) (*payment.Transaction, error) {
	return r.getBySID(ctx, sid, false)
}

func (r *TransactionRepository) GetBySIDForUpdate(ctx context.Context, sid string) (*payment.Transaction, error) {
	return r.getBySID(ctx, sid, true)
}

func (r *TransactionRepository) getBySID(ctx context.Context, sid string, lock bool) (*payment.Transaction, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if lock {
		query = query.Scopes(db.ForUpdate())
	}

	var model models.TransactionModel
	if err := query.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TransactionRepository) GetByProviderTxID(ctx context.Context, provider vo.Provider, providerTxID string) (*payment.Transaction, error) {
	return r.getByProviderTxID(ctx, provider, providerTxID, false)
}

func (r *TransactionRepository) GetByProviderTxIDForUpdate(ctx context.Context, provider vo.Provider, providerTxID string) (*payment.Transaction, error) {
	return r.getByProviderTxID(ctx, provider, providerTxID, true)
}

func (r *TransactionRepository) getByProviderTxID(ctx context.Context, provider vo.Provider, providerTxID string, lock bool) (*payment.Transaction, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if lock {
		query = query.Scopes(db.ForUpdate())
	}

	var model models.TransactionModel
	if err := query.
		Where("provider = ? AND provider_tx_id = ?", provider.String(), providerTxID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by provider tx id: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TransactionRepository) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Transaction, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.Provider != nil {
		query = query.Where("provider = ?", filter.Provider.String())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var txModels []*models.TransactionModel
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&txModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	txs, err := r.mapper.ToDomainList(txModels)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *TransactionRepository) ListByTimeRange(ctx context.Context, provider vo.Provider, from, to time.Time) ([]*payment.Transaction, error) {
	var txModels []*models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("provider = ? AND created_at >= ? AND created_at <= ?", provider.String(), from, to).
		Order("created_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions by time range: %w", err)
	}

	return r.mapper.ToDomainList(txModels)
}

func (r *TransactionRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*payment.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	var txModels []*models.TransactionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND created_at < ?", vo.TransactionStatusPending.String(), cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&txModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale transactions: %w", err)
	}

	return r.mapper.ToDomainList(txModels)
}

type ReconciliationRepository struct {
	db     *gorm.DB
	mapper *mappers.TransactionMapper
}

func NewReconciliationRepository(gdb *gorm.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: gdb, mapper: mappers.NewTransactionMapper()}
}

func (r *ReconciliationRepository) Create(ctx context.Context, entry *payment.ReconciliationEntry) error {
	model, err := r.mapper.ReconciliationToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to map reconciliation entry: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create reconciliation entry: %w", err)
	}

	entry.SetID(model.ID)
	return nil
}

func (r *ReconciliationRepository) ListUnresolved(ctx context.Context, limit int) ([]*payment.ReconciliationEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entryModels []*models.ReconciliationModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("resolved = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list unresolved entries: %w", err)
	}

	entries := make([]*payment.ReconciliationEntry, 0, len(entryModels))
	for _, model := range entryModels {
		entry, err := r.mapper.ReconciliationToDomain(model)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *ReconciliationRepository) MarkResolved(ctx context.Context, id uint, note string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ReconciliationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resolved": true,
			"note":     note,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark reconciliation resolved: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reconciliation entry %d not found", id)
	}
	return nil
}
