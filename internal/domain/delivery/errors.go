package delivery

import "errors"

var (
	ErrInvalidDeliveryRef  = errors.New("ad and bot references are required")
	ErrInvalidTelegramUser = errors.New("telegram user id must be positive")
	ErrNegativeRevenue     = errors.New("revenue amounts cannot be negative")
	ErrSplitMismatch       = errors.New("platform fee and owner share must sum to revenue")
	ErrInvalidButtonIndex  = errors.New("button index cannot be negative")
	ErrMissingOriginalURL  = errors.New("original url is required")
	ErrImpressionNotFound  = errors.New("impression not found")
	ErrBotUserNotFound     = errors.New("bot user not found")
)
