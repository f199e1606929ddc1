package ad

import "errors"

var (
	// ErrAdNotFound is returned when no ad matches the lookup.
	ErrAdNotFound = errors.New("ad not found")

	// ErrNotEditable is returned when content or order changes hit a non-draft ad.
	ErrNotEditable = errors.New("ad is only editable in draft")

	// ErrBudgetExhausted is returned when a delivery would overdraw the remaining budget.
	ErrBudgetExhausted = errors.New("ad budget exhausted")

	// ErrNotServable is returned when delivery is attempted outside RUNNING.
	ErrNotServable = errors.New("ad is not servable")
)
