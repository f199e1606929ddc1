package valueobjects

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusSuccess, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

func (s TransactionStatus) IsPending() bool {
	return s == TransactionStatusPending
}

func (s TransactionStatus) IsSuccess() bool {
	return s == TransactionStatusSuccess
}

func (s TransactionStatus) IsFinal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

func (s TransactionStatus) String() string {
	return string(s)
}
