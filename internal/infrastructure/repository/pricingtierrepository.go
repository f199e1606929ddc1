package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/mappers"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/db"
)

type PricingTierRepository struct {
	db     *gorm.DB
	mapper *mappers.PricingTierMapper
}

func NewPricingTierRepository(gdb *gorm.DB) *PricingTierRepository {
	return &PricingTierRepository{db: gdb, mapper: mappers.NewPricingTierMapper()}
}

func (r *PricingTierRepository) Create(ctx context.Context, tier *pricing.Tier) error {
	model, err := r.mapper.ToModel(tier)
	if err != nil {
		return fmt.Errorf("failed to map tier: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tier: %w", err)
	}

	tier.SetID(model.ID)
	return nil
}

func (r *PricingTierRepository) Update(ctx context.Context, tier *pricing.Tier) error {
	model, err := r.mapper.ToModel(tier)
	if err != nil {
		return fmt.Errorf("failed to map tier: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PricingTierModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"impressions": model.Impressions,
			"price_usd":   model.PriceUSD,
			"is_active":   model.IsActive,
			"sort_order":  model.SortOrder,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tier: %w", result.Error)
	}

	return nil
}

func (r *PricingTierRepository) GetByID(ctx context.Context, id uint) (*pricing.Tier, error) {
	var model models.PricingTierModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PricingTierRepository) GetBySID(ctx context.Context, sid string) (*pricing.Tier, error) {
	var model models.PricingTierModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get tier by sid: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *PricingTierRepository) List(ctx context.Context) ([]*pricing.Tier, error) {
	var tierModels []*models.PricingTierModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("impressions ASC").
		Find(&tierModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}

	return r.mapper.ToDomainList(tierModels)
}

func (r *PricingTierRepository) ListActive(ctx context.Context) ([]*pricing.Tier, error) {
	var tierModels []*models.PricingTierModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("impressions ASC").
		Find(&tierModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list active tiers: %w", err)
	}

	return r.mapper.ToDomainList(tierModels)
}

func (r *PricingTierRepository) ExistsByImpressions(ctx context.Context, impressions int64, excludeID uint) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.PricingTierModel{}).
		Where("impressions = ?", impressions)

	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tier impressions: %w", err)
	}

	return count > 0, nil
}

func (r *PricingTierRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PricingTierModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pricing.ErrTierNotFound
	}
	return nil
}
