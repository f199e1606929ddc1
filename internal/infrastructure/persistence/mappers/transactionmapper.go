package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// TransactionMapper provides mapping between transaction entities and persistence models.
type TransactionMapper struct{}

// NewTransactionMapper creates a new transaction mapper.
func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *TransactionMapper) ToModel(entity *payment.Transaction) (*models.TransactionModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.TransactionModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		UserID:          entity.UserID(),
		Type:            entity.Type().String(),
		Provider:        entity.Provider().String(),
		ProviderTxID:    entity.ProviderTxID(),
		Coin:            entity.Coin(),
		Network:         entity.Network(),
		Amount:          entity.Amount(),
		Fee:             entity.Fee(),
		Status:          entity.Status().String(),
		ProviderBoundAt: entity.ProviderBoundAt(),
		PerformedAt:     entity.PerformedAt(),
		CancelledAt:     entity.CancelledAt(),
		CancelReason:    entity.CancelReason(),
		FailReason:      entity.FailReason(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}

	if len(entity.Metadata()) > 0 {
		model.Metadata = entity.Metadata()
	}

	return model, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *TransactionMapper) ToDomain(model *models.TransactionModel) (*payment.Transaction, error) {
	if model == nil {
		return nil, nil
	}

	metadata := map[string]interface{}(model.Metadata)
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return payment.ReconstructTransaction(payment.TransactionReconstructParams{
		ID:              model.ID,
		SID:             model.SID,
		UserID:          model.UserID,
		Type:            vo.TransactionType(model.Type),
		Provider:        vo.Provider(model.Provider),
		ProviderTxID:    model.ProviderTxID,
		Coin:            model.Coin,
		Network:         model.Network,
		Amount:          model.Amount,
		Fee:             model.Fee,
		Status:          vo.TransactionStatus(model.Status),
		ProviderBoundAt: model.ProviderBoundAt,
		PerformedAt:     model.PerformedAt,
		CancelledAt:     model.CancelledAt,
		CancelReason:    model.CancelReason,
		FailReason:      model.FailReason,
		Metadata:        metadata,
		Version:         model.Version,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}), nil
}

// ToDomainList converts a slice of persistence models to domain entities.
func (m *TransactionMapper) ToDomainList(modelList []*models.TransactionModel) ([]*payment.Transaction, error) {
	if modelList == nil {
		return nil, nil
	}

	txs := make([]*payment.Transaction, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		txs = append(txs, entity)
	}
	return txs, nil
}

// ReconciliationToModel converts a reconciliation entry to its persistence model.
func (m *TransactionMapper) ReconciliationToModel(entry *payment.ReconciliationEntry) (*models.ReconciliationModel, error) {
	if entry == nil {
		return nil, nil
	}

	return &models.ReconciliationModel{
		ID:           entry.ID(),
		Provider:     entry.Provider().String(),
		ProviderTxID: entry.ProviderTxID(),
		Method:       entry.Method(),
		RawPayload:   entry.RawPayload(),
		Resolved:     entry.IsResolved(),
		Note:         entry.Note(),
		CreatedAt:    entry.CreatedAt(),
	}, nil
}

// ReconciliationToDomain converts a persistence model to a reconciliation entry.
func (m *TransactionMapper) ReconciliationToDomain(model *models.ReconciliationModel) (*payment.ReconciliationEntry, error) {
	if model == nil {
		return nil, nil
	}

	return payment.ReconstructReconciliationEntry(payment.ReconciliationReconstructParams{
		ID:           model.ID,
		Provider:     vo.Provider(model.Provider),
		ProviderTxID: model.ProviderTxID,
		Method:       model.Method,
		RawPayload:   model.RawPayload,
		Resolved:     model.Resolved,
		Note:         model.Note,
		CreatedAt:    model.CreatedAt,
	}), nil
}
