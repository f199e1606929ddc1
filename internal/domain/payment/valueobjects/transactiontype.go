package valueobjects

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdraw   TransactionType = "WITHDRAW"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeAdjustment:
		return true
	default:
		return false
	}
}

func (t TransactionType) IsDeposit() bool {
	return t == TransactionTypeDeposit
}

func (t TransactionType) String() string {
	return string(t)
}
