package bot

import "errors"

var (
	ErrBotNotFound          = errors.New("bot not found")
	ErrInvalidOwner         = errors.New("bot owner is required")
	ErrInvalidTelegramBotID = errors.New("telegram bot id must be positive")
	ErrInvalidUsername      = errors.New("bot username is required")
	ErrMissingBotToken      = errors.New("bot token is required")
	ErrMissingAPIKeyHash    = errors.New("api key hash is required")
	ErrBotNotActive         = errors.New("bot is not active")
	ErrBotAlreadyPaused     = errors.New("bot is already paused")
	ErrBotNotPaused         = errors.New("bot is not paused")
	ErrAPIKeyAlreadyRevoked = errors.New("api key is already revoked")
	ErrFrequencyTooLow      = errors.New("frequency below minimum spacing")
	ErrNegativeEarnings     = errors.New("earnings amount cannot be negative")
	ErrSettleExceedsPending = errors.New("settlement exceeds pending earnings")
	ErrTelegramBotIDTaken   = errors.New("telegram bot already registered")
)
