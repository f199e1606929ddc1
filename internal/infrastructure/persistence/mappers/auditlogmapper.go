package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/moderation"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// AuditLogMapper provides mapping between audit log entities and persistence models.
type AuditLogMapper struct{}

// NewAuditLogMapper creates a new audit log mapper.
func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *AuditLogMapper) ToModel(entity *moderation.AuditLog) (*models.AuditLogModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.AuditLogModel{
		ID:          entity.ID(),
		ModeratorID: entity.ModeratorID(),
		Action:      entity.Action(),
		EntityType:  entity.EntityType(),
		EntityID:    entity.EntityID(),
		CreatedAt:   entity.CreatedAt(),
	}

	if len(entity.Metadata()) > 0 {
		model.Metadata = entity.Metadata()
	}

	return model, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *AuditLogMapper) ToDomain(model *models.AuditLogModel) (*moderation.AuditLog, error) {
	if model == nil {
		return nil, nil
	}

	metadata := map[string]interface{}(model.Metadata)
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return moderation.ReconstructAuditLog(moderation.AuditLogReconstructParams{
		ID:          model.ID,
		ModeratorID: model.ModeratorID,
		Action:      model.Action,
		EntityType:  model.EntityType,
		EntityID:    model.EntityID,
		Metadata:    metadata,
		CreatedAt:   model.CreatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *AuditLogMapper) ToDomainList(modelList []*models.AuditLogModel) ([]*moderation.AuditLog, error) {
	if modelList == nil {
		return nil, nil
	}

	logs := make([]*moderation.AuditLog, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entity)
	}
	return logs, nil
}
