package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/user"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/authorization"
)

// UserMapper provides mapping between domain entities and persistence models.
type UserMapper struct{}

// NewUserMapper creates a new user mapper.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *UserMapper) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UserModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		TelegramID:  entity.TelegramID(),
		Username:    entity.Username(),
		FirstName:   entity.FirstName(),
		LastName:    entity.LastName(),
		Role:        entity.Role().String(),
		Roles:       models.StringArray(entity.RoleStrings()),
		IsActive:    entity.IsActive(),
		IsBanned:    entity.IsBanned(),
		BanReason:   entity.BanReason(),
		Locale:      entity.Locale(),
		LastLoginAt: entity.LastLoginAt(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *UserMapper) ToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	roles := make([]authorization.UserRole, 0, len(model.Roles))
	for _, r := range model.Roles {
		roles = append(roles, authorization.ParseUserRole(r))
	}

	return user.ReconstructUser(user.UserReconstructParams{
		ID:          model.ID,
		SID:         model.SID,
		TelegramID:  model.TelegramID,
		Username:    model.Username,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Role:        authorization.ParseUserRole(model.Role),
		Roles:       roles,
		IsActive:    model.IsActive,
		IsBanned:    model.IsBanned,
		BanReason:   model.BanReason,
		Locale:      model.Locale,
		LastLoginAt: model.LastLoginAt,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *UserMapper) ToDomainList(modelList []*models.UserModel) ([]*user.User, error) {
	if modelList == nil {
		return nil, nil
	}

	users := make([]*user.User, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}
	return users, nil
}
