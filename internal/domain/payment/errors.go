package payment

import "errors"

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidUser          = errors.New("user is required")
	ErrInvalidProvider      = errors.New("unsupported payment provider")
	ErrInvalidAmount        = errors.New("invalid transaction amount")
	ErrInvalidNetwork       = errors.New("coin and network are required")
	ErrInvalidProviderTxID  = errors.New("provider transaction id is required")
	ErrProviderTxMismatch   = errors.New("transaction already bound to another provider id")
	ErrProviderTxIDTaken    = errors.New("provider transaction id already bound")
	ErrTransactionFinal     = errors.New("transaction already in a final state")
	ErrTransactionCompleted = errors.New("transaction already completed")
	ErrAmountMismatch       = errors.New("callback amount does not match transaction")
)
