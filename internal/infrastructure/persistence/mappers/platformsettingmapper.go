package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/setting"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// PlatformSettingMapper provides mapping between setting entities and persistence models.
type PlatformSettingMapper struct{}

// NewPlatformSettingMapper creates a new platform setting mapper.
func NewPlatformSettingMapper() *PlatformSettingMapper {
	return &PlatformSettingMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *PlatformSettingMapper) ToModel(entity *setting.PlatformSetting) (*models.PlatformSettingModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlatformSettingModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		Category:    entity.Category(),
		Key:         entity.Key(),
		Value:       entity.Value(),
		ValueType:   string(entity.ValueType()),
		Description: entity.Description(),
		UpdatedBy:   entity.UpdatedBy(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *PlatformSettingMapper) ToDomain(model *models.PlatformSettingModel) (*setting.PlatformSetting, error) {
	if model == nil {
		return nil, nil
	}

	return setting.ReconstructPlatformSetting(setting.SettingReconstructParams{
		ID:          model.ID,
		SID:         model.SID,
		Category:    model.Category,
		Key:         model.Key,
		Value:       model.Value,
		ValueType:   setting.ValueType(model.ValueType),
		Description: model.Description,
		UpdatedBy:   model.UpdatedBy,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *PlatformSettingMapper) ToDomainList(modelList []*models.PlatformSettingModel) ([]*setting.PlatformSetting, error) {
	if modelList == nil {
		return nil, nil
	}

	settings := make([]*setting.PlatformSetting, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		settings = append(settings, entity)
	}
	return settings, nil
}
