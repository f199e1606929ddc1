package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type PlatformSettingRepository struct {
	db     *gorm.DB
	mapper *mappers.PlatformSettingMapper
}

func NewPlatformSettingRepository(gdb *gorm.DB) *PlatformSettingRepository {
	return &PlatformSettingRepository{db: gdb, mapper: mappers.NewPlatformSettingMapper()}
}

func (r *PlatformSettingRepository) GetByKey(ctx context.Context, key string) (*setting.PlatformSetting, error) {
	var model models.PlatformSettingModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("`key` = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PlatformSettingRepository) GetByCategory(ctx context.Context, category string) ([]*setting.PlatformSetting, error) {
	var settingModels []*models.PlatformSettingModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("category = ?", category).
		Order("`key` ASC").
		Find(&settingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings by category: %w", err)
	}

	return r.mapper.ToDomainList(settingModels)
}

func (r *PlatformSettingRepository) GetAll(ctx context.Context) ([]*setting.PlatformSetting, error) {
	var settingModels []*models.PlatformSettingModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("category ASC, `key` ASC").
		Find(&settingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get all settings: %w", err)
	}

	return r.mapper.ToDomainList(settingModels)
}

func (r *PlatformSettingRepository) Upsert(ctx context.Context, s *setting.PlatformSetting) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		return fmt.Errorf("failed to map setting: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"value", "value_type", "description", "updated_by", "version", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

func (r *PlatformSettingRepository) Delete(ctx context.Context, key string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("`key` = ?", key).
		Delete(&models.PlatformSettingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return setting.ErrSettingNotFound
	}
	return nil
}
