package withdrawal

import "errors"

var (
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrInvalidUser          = errors.New("user is required")
	ErrInvalidCoin          = errors.New("coin is required")
	ErrInvalidAmount        = errors.New("withdrawal amount must be positive")
	ErrInvalidFee           = errors.New("withdrawal fee cannot be negative")
	ErrNetAmountNotPositive = errors.New("net amount after fee must be positive")
	ErrInvalidApprover      = errors.New("admin is required")
	ErrReasonRequired       = errors.New("rejection reason is required")
	ErrNotCancellable       = errors.New("withdrawal can no longer be cancelled")
	ErrBelowMinimum         = errors.New("amount below minimum withdrawal")
	ErrDailyCapExceeded     = errors.New("daily withdrawal cap exceeded")
)
