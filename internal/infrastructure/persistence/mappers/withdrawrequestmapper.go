package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/withdrawal/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// WithdrawRequestMapper provides mapping between withdrawal entities and persistence models.
type WithdrawRequestMapper struct{}

// NewWithdrawRequestMapper creates a new withdraw request mapper.
func NewWithdrawRequestMapper() *WithdrawRequestMapper {
	return &WithdrawRequestMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *WithdrawRequestMapper) ToModel(entity *withdrawal.WithdrawRequest) (*models.WithdrawRequestModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.WithdrawRequestModel{
		ID:          entity.ID(),
		SID:         entity.SID(),
		UserID:      entity.UserID(),
		Coin:        entity.Coin(),
		Network:     entity.Network().String(),
		Address:     entity.Address(),
		Amount:      entity.Amount(),
		Fee:         entity.Fee(),
		NetAmount:   entity.NetAmount(),
		Status:      entity.Status().String(),
		ApprovedBy:  entity.ApprovedBy(),
		ApprovedAt:  entity.ApprovedAt(),
		CompletedAt: entity.CompletedAt(),
		Reason:      entity.Reason(),
		TxHash:      entity.TxHash(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *WithdrawRequestMapper) ToDomain(model *models.WithdrawRequestModel) (*withdrawal.WithdrawRequest, error) {
	if model == nil {
		return nil, nil
	}

	return withdrawal.ReconstructWithdrawRequest(withdrawal.WithdrawReconstructParams{
		ID:          model.ID,
		SID:         model.SID,
		UserID:      model.UserID,
		Coin:        model.Coin,
		Network:     vo.Network(model.Network),
		Address:     model.Address,
		Amount:      model.Amount,
		Fee:         model.Fee,
		NetAmount:   model.NetAmount,
		Status:      vo.WithdrawStatus(model.Status),
		ApprovedBy:  model.ApprovedBy,
		ApprovedAt:  model.ApprovedAt,
		CompletedAt: model.CompletedAt,
		Reason:      model.Reason,
		TxHash:      model.TxHash,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *WithdrawRequestMapper) ToDomainList(modelList []*models.WithdrawRequestModel) ([]*withdrawal.WithdrawRequest, error) {
	if modelList == nil {
		return nil, nil
	}

	requests := make([]*withdrawal.WithdrawRequest, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		requests = append(requests, entity)
	}
	return requests, nil
}
