package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type WithdrawRequestRepository struct {
	db     *gorm.DB
	mapper *mappers.WithdrawRequestMapper
}

func NewWithdrawRequestRepository(gdb *gorm.DB) *WithdrawRequestRepository {
	return &WithdrawRequestRepository{db: gdb, mapper: mappers.NewWithdrawRequestMapper()}
}

func (r *WithdrawRequestRepository) Create(ctx context.Context, w *withdrawal.WithdrawRequest) error {
	model, err := r.mapper.ToModel(w)
	if err != nil {
		return fmt.Errorf("failed to map withdraw request: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create withdraw request: %w", err)
	}

	w.SetID(model.ID)
	return nil
}

func (r *WithdrawRequestRepository) Update(ctx context.Context, w *withdrawal.WithdrawRequest) error {
	model, err := r.mapper.ToModel(w)
	if err != nil {
		return fmt.Errorf("failed to map withdraw request: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.WithdrawRequestModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"approved_by":  model.ApprovedBy,
			"approved_at":  model.ApprovedAt,
			"completed_at": model.CompletedAt,
			"reason":       model.Reason,
			"tx_hash":      model.TxHash,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update withdraw request: %w", result.Error)
	}

	return nil
}

func (r *WithdrawRequestRepository) GetByID(ctx context.Context, id uint) (*withdrawal.WithdrawRequest, error) {
	var model models.WithdrawRequestModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, withdrawal.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdraw request: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WithdrawRequestRepository) GetBySID(ctx context.Context, sid string) (*withdrawal.WithdrawRequest, error) {
	return r.getBySID(ctx, sid, false)
}

func (r *WithdrawRequestRepository) GetBySIDForUpdate(ctx context.Context, sid string) (*withdrawal.WithdrawRequest, error) {
	return r.getBySID(ctx, sid, true)
}

func (r *WithdrawRequestRepository) getBySID(ctx context.Context, sid string, lock bool) (*withdrawal.WithdrawRequest, error) {
	query := db.GetTxFromContext(ctx, r.db)
	if lock {
		query = query.Scopes(db.ForUpdate())
	}

	var model models.WithdrawRequestModel
	if err := query.Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, withdrawal.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdraw request by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WithdrawRequestRepository) List(ctx context.Context, filter withdrawal.ListFilter) ([]*withdrawal.WithdrawRequest, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.WithdrawRequestModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdraw requests: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	var requestModels []*models.WithdrawRequestModel
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&requestModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list withdraw requests: %w", err)
	}

	requests, err := r.mapper.ToDomainList(requestModels)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *WithdrawRequestRepository) SumAmountByUserSince(ctx context.Context, userID uint, since time.Time, statuses []vo.WithdrawStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = s.String()
	}

	var sum decimal.NullDecimal
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.WithdrawRequestModel{}).
		Where("user_id = ? AND created_at >= ? AND status IN ?", userID, since, statusStrings).
		Select("SUM(amount)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum withdraw amounts: %w", err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
