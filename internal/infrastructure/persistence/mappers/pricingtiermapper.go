package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/pricing"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// PricingTierMapper provides mapping between tier entities and persistence models.
type PricingTierMapper struct{}

// NewPricingTierMapper creates a new pricing tier mapper.
func NewPricingTierMapper() *PricingTierMapper {
	return &PricingTierMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *PricingTierMapper) ToModel(entity *pricing.Tier) (*models.PricingTierModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PricingTierModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		Name:        entity.Name(),
		Impressions: entity.Impressions(),
		PriceUSD:    entity.PriceUSD(),
		IsActive:    entity.IsActive(),
		SortOrder:   entity.SortOrder(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *PricingTierMapper) ToDomain(model *models.PricingTierModel) (*pricing.Tier, error) {
	if model == nil {
		return nil, nil
	}

	return pricing.ReconstructTier(pricing.TierReconstructParams{
		ID:          model.ID,
		SID:         model.SID,
		Name:        model.Name,
		Impressions: model.Impressions,
		PriceUSD:    model.PriceUSD,
		IsActive:    model.IsActive,
		SortOrder:   model.SortOrder,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *PricingTierMapper) ToDomainList(modelList []*models.PricingTierModel) ([]*pricing.Tier, error) {
	if modelList == nil {
		return nil, nil
	}

	tiers := make([]*pricing.Tier, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, entity)
	}
	return tiers, nil
}
