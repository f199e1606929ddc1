package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/delivery"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// ImpressionMapper provides mapping between delivery entities and persistence models.
type ImpressionMapper struct{}

// NewImpressionMapper creates a new impression mapper.
func NewImpressionMapper() *ImpressionMapper {
	return &ImpressionMapper{}
}

// ToModel converts an impression to its persistence model.
func (m *ImpressionMapper) ToModel(entity *delivery.Impression) (*models.ImpressionModel, error) {
	if entity == nil {
		return nil, nil
	}

	profile := entity.Profile()
	return &models.ImpressionModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		AdID:           entity.AdID(),
		BotID:          entity.BotID(),
		TelegramUserID: entity.TelegramUserID(),
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Username:       profile.Username,
		LanguageCode:   profile.LanguageCode,
		Country:        profile.Country,
		City:           profile.City,
		Revenue:        entity.Revenue(),
		PlatformFee:    entity.PlatformFee(),
		BotOwnerEarns:  entity.BotOwnerEarns(),
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

// ToDomain converts a persistence model to an impression.
func (m *ImpressionMapper) ToDomain(model *models.ImpressionModel) (*delivery.Impression, error) {
	if model == nil {
		return nil, nil
	}

	return delivery.ReconstructImpression(delivery.ImpressionReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		AdID:           model.AdID,
		BotID:          model.BotID,
		TelegramUserID: model.TelegramUserID,
		Profile: delivery.TelegramProfile{
			FirstName:    model.FirstName,
			LastName:     model.LastName,
			Username:     model.Username,
			LanguageCode: model.LanguageCode,
			Country:      model.Country,
			City:         model.City,
		},
		Revenue:       model.Revenue,
		PlatformFee:   model.PlatformFee,
		BotOwnerEarns: model.BotOwnerEarns,
		CreatedAt:     model.CreatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to impressions.
func (m *ImpressionMapper) ToDomainList(modelList []*models.ImpressionModel) ([]*delivery.Impression, error) {
	if modelList == nil {
		return nil, nil
	}

	impressions := make([]*delivery.Impression, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		impressions = append(impressions, entity)
	}
	return impressions, nil
}

// ClickToModel converts a click event to its persistence model.
func (m *ImpressionMapper) ClickToModel(entity *delivery.ClickEvent) (*models.ClickEventModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ClickEventModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		AdID:           entity.AdID(),
		BotID:          entity.BotID(),
		TelegramUserID: entity.TelegramUserID(),
		ButtonIndex:    entity.ButtonIndex(),
		OriginalURL:    entity.OriginalURL(),
		Clicked:        entity.IsClicked(),
		ClickedAt:      entity.ClickedAt(),
		IPAddress:      entity.IPAddress(),
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

// ClickToDomain converts a persistence model to a click event.
func (m *ImpressionMapper) ClickToDomain(model *models.ClickEventModel) (*delivery.ClickEvent, error) {
	if model == nil {
		return nil, nil
	}

	return delivery.ReconstructClickEvent(delivery.ClickEventReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		AdID:           model.AdID,
		BotID:          model.BotID,
		TelegramUserID: model.TelegramUserID,
		ButtonIndex:    model.ButtonIndex,
		OriginalURL:    model.OriginalURL,
		Clicked:        model.Clicked,
		ClickedAt:      model.ClickedAt,
		IPAddress:      model.IPAddress,
		CreatedAt:      model.CreatedAt,
	}), nil
}

// ClicksToDomain converts a slice of persistence models to click events.
func (m *ImpressionMapper) ClicksToDomain(modelList []*models.ClickEventModel) ([]*delivery.ClickEvent, error) {
	if modelList == nil {
		return nil, nil
	}

	clicks := make([]*delivery.ClickEvent, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ClickToDomain(model)
		if err != nil {
			return nil, err
		}
		clicks = append(clicks, entity)
	}
	return clicks, nil
}

// BotUserToModel converts a bot user to its persistence model.
func (m *ImpressionMapper) BotUserToModel(entity *delivery.BotUser) (*models.BotUserModel, error) {
	if entity == nil {
		return nil, nil
	}

	profile := entity.Profile()
	return &models.BotUserModel{
		ID:             entity.ID(),
		BotID:          entity.BotID(),
		TelegramUserID: entity.TelegramUserID(),
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Username:       profile.Username,
		LanguageCode:   profile.LanguageCode,
		Country:        profile.Country,
		City:           profile.City,
		FirstSeenAt:    entity.FirstSeenAt(),
		LastSeenAt:     entity.LastSeenAt(),
	}, nil
}

// BotUserToDomain converts a persistence model to a bot user.
func (m *ImpressionMapper) BotUserToDomain(model *models.BotUserModel) (*delivery.BotUser, error) {
	if model == nil {
		return nil, nil
	}

	return delivery.ReconstructBotUser(delivery.BotUserReconstructParams{
		ID:             model.ID,
		BotID:          model.BotID,
		TelegramUserID: model.TelegramUserID,
		Profile: delivery.TelegramProfile{
			FirstName:    model.FirstName,
			LastName:     model.LastName,
			Username:     model.Username,
			LanguageCode: model.LanguageCode,
			Country:      model.Country,
			City:         model.City,
		},
		FirstSeenAt: model.FirstSeenAt,
		LastSeenAt:  model.LastSeenAt,
	}), nil
}
