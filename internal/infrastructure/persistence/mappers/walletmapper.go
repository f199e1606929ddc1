package mappers

import (
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet"
	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/infrastructure/persistence/models"
)

// WalletMapper provides mapping between wallet entities and persistence models.
type WalletMapper struct{}

// NewWalletMapper creates a new wallet mapper.
func NewWalletMapper() *WalletMapper {
	return &WalletMapper{}
}

// ToModel converts a domain entity to a persistence model.
func (m *WalletMapper) ToModel(entity *wallet.Wallet) (*models.WalletModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.WalletModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		UserID:         entity.UserID(),
		Available:      entity.Available(),
		Reserved:       entity.Reserved(),
		Pending:        entity.Pending(),
		TotalDeposited: entity.TotalDeposited(),
		TotalWithdrawn: entity.TotalWithdrawn(),
		TotalEarned:    entity.TotalEarned(),
		TotalSpent:     entity.TotalSpent(),
		Version:        entity.Version(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

// ToDomain converts a persistence model to a domain entity.
func (m *WalletMapper) ToDomain(model *models.WalletModel) (*wallet.Wallet, error) {
	if model == nil {
		return nil, nil
	}

	return wallet.ReconstructWallet(wallet.WalletReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		UserID:         model.UserID,
		Available:      model.Available,
		Reserved:       model.Reserved,
		Pending:        model.Pending,
		TotalDeposited: model.TotalDeposited,
		TotalWithdrawn: model.TotalWithdrawn,
		TotalEarned:    model.TotalEarned,
		TotalSpent:     model.TotalSpent,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}), nil
}

// LedgerEntryToModel converts a ledger entry to its persistence model.
func (m *WalletMapper) LedgerEntryToModel(entry *wallet.LedgerEntry) (*models.LedgerEntryModel, error) {
	if entry == nil {
		return nil, nil
	}

	return &models.LedgerEntryModel{
		ID:          entry.ID(),
		SID:         entry.SID(),
		UserID:      entry.UserID(),
		EntryType:   entry.EntryType().String(),
		Amount:      entry.Amount(),
		Balance:     entry.Balance(),
		RefID:       entry.RefID(),
		RefType:     entry.RefType(),
		Description: entry.Description(),
		CreatedAt:   entry.CreatedAt(),
	}, nil
}

// LedgerEntryToDomain converts a persistence model to a ledger entry.
func (m *WalletMapper) LedgerEntryToDomain(model *models.LedgerEntryModel) (*wallet.LedgerEntry, error) {
	if model == nil {
		return nil, nil
	}

	return wallet.ReconstructLedgerEntry(
		model.ID,
		model.SID,
		model.UserID,
		vo.EntryType(model.EntryType),
		model.Amount,
		model.Balance,
		model.RefID,
		model.RefType,
		model.Description,
		model.CreatedAt,
	), nil
}

// LedgerEntriesToDomain converts a slice of models to ledger entries.
func (m *WalletMapper) LedgerEntriesToDomain(modelList []*models.LedgerEntryModel) ([]*wallet.LedgerEntry, error) {
	if modelList == nil {
		return nil, nil
	}

	entries := make([]*wallet.LedgerEntry, 0, len(modelList))
	for _, model := range modelList {
		entry, err := m.LedgerEntryToDomain(model)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
