package wallet

import "errors"

var (
	// ErrWalletNotFound is returned when no wallet exists for the user.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidAmount is returned when an operation amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when the available bucket cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient available balance")

	// ErrInsufficientReserved is returned when the reserved bucket cannot cover the amount.
	ErrInsufficientReserved = errors.New("insufficient reserved balance")

	// ErrInsufficientPending is returned when the pending bucket cannot cover the amount.
	ErrInsufficientPending = errors.New("insufficient pending balance")

	// ErrEntryNotFound is returned when a ledger entry lookup matches nothing.
	ErrEntryNotFound = errors.New("ledger entry not found")
)
