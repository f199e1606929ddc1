package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/bot/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// BotMapper provides mapping between bot entities and persistence models.
type BotMapper struct{}

// NewBotMapper creates a new bot mapper.
func NewBotMapper() *BotMapper {
	return &BotMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *BotMapper) ToModel(entity *bot.Bot) (*models.BotModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.BotModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
		OwnerID:           entity.OwnerID(),
		TelegramBotID:     entity.TelegramBotID(),
		Username:          entity.Username(),
		Title:             entity.Title(),
		Description:       entity.Description(),
		TokenEncrypted:    entity.TokenEncrypted(),
		APIKeyHash:        entity.APIKeyHash(),
		APIKeyIssuedAt:    entity.APIKeyIssuedAt(),
		APIKeyRevoked:     entity.IsAPIKeyRevoked(),
		Status:            entity.Status().String(),
		IsPaused:          entity.IsPaused(),
		Monetized:         entity.IsMonetized(),
		Category:          entity.Category(),
		Language:          entity.Language(),
		TotalMembers:      entity.TotalMembers(),
		ActiveMembers:     entity.ActiveMembers(),
		BlockedCategories: models.StringArray(entity.BlockedCategories()),
		FrequencyMinutes:  entity.FrequencyMinutes(),
		TotalEarnings:     entity.TotalEarnings(),
		PendingEarnings:   entity.PendingEarnings(),
		RejectReason:      entity.RejectReason(),
		SuspendReason:     entity.SuspendReason(),
		LastServedAt:      entity.LastServedAt(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *BotMapper) ToDomain(model *models.BotModel) (*bot.Bot, error) {
	if model == nil {
		return nil, nil
	}

	return bot.ReconstructBot(bot.BotReconstructParams{
		ID:                model.ID,
		SID:               model.SID,
		OwnerID:           model.OwnerID,
		TelegramBotID:     model.TelegramBotID,
		Username:          model.Username,
		Title:             model.Title,
		Description:       model.Description,
		TokenEncrypted:    model.TokenEncrypted,
		APIKeyHash:        model.APIKeyHash,
		APIKeyIssuedAt:    model.APIKeyIssuedAt,
		APIKeyRevoked:     model.APIKeyRevoked,
		Status:            vo.BotStatus(model.Status),
		IsPaused:          model.IsPaused,
		Monetized:         model.Monetized,
		Category:          model.Category,
		Language:          model.Language,
		TotalMembers:      model.TotalMembers,
		ActiveMembers:     model.ActiveMembers,
		BlockedCategories: model.BlockedCategories,
		FrequencyMinutes:  model.FrequencyMinutes,
		TotalEarnings:     model.TotalEarnings,
		PendingEarnings:   model.PendingEarnings,
		RejectReason:      model.RejectReason,
		SuspendReason:     model.SuspendReason,
		LastServedAt:      model.LastServedAt,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *BotMapper) ToDomainList(modelList []*models.BotModel) ([]*bot.Bot, error) {
	if modelList == nil {
		return nil, nil
	}

	bots := make([]*bot.Bot, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		bots = append(bots, entity)
	}
	return bots, nil
}
