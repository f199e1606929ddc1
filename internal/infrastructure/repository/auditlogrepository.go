package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type AuditLogRepository struct {
	db     *gorm.DB
	mapper *mappers.AuditLogMapper
}

func NewAuditLogRepository(gdb *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: gdb, mapper: mappers.NewAuditLogMapper()}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *moderation.AuditLog) error {
	model, err := r.mapper.ToModel(log)
	if err != nil {
		return fmt.Errorf("failed to map audit log: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	log.SetID(model.ID)
	return nil
}

func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*moderation.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logModels []*models.AuditLogModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id DESC").
		Limit(limit).
		Find(&logModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs by entity: %w", err)
	}

	return r.mapper.ToDomainList(logModels)
}

func (r *AuditLogRepository) ListByModerator(ctx context.Context, moderatorID uint, limit int) ([]*moderation.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logModels []*models.AuditLogModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("moderator_id = ?", moderatorID).
		Order("id DESC").
		Limit(limit).
		Find(&logModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs by moderator: %w", err)
	}

	return r.mapper.ToDomainList(logModels)
}
