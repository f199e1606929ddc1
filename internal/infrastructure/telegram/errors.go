package telegram

import (
	"errors"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// IsBotBlocked returns true if the error indicates the bot was blocked by the user (403).
func IsBotBlocked(err error) bool {
	var tgErr *tgbotapi.TelegramError
	if errors.As(err, &tgErr) {
		return tgErr.Code == 403
	}
	return false
}

// IsRetryAfter returns true if the error is a 429 Too Many Requests with retry_after.
func IsRetryAfter(err error) bool {
	var tgErr *tgbotapi.TelegramError
	if errors.As(err, &tgErr) {
		return tgErr.Code == 429 && retryAfterSeconds(tgErr) > 0
	}
	return false
}

// GetRetryAfter extracts the retry_after seconds from a 429 error.
// Returns 0 if the error is not a 429 or has no retry_after.
func GetRetryAfter(err error) int {
	var tgErr *tgbotapi.TelegramError
	if errors.As(err, &tgErr) {
		return retryAfterSeconds(tgErr)
	}
	return 0
}

// isNonRetryable returns true if the error should not be retried (400, 403, etc.).
func isNonRetryable(err error) bool {
	var tgErr *tgbotapi.TelegramError
	if errors.As(err, &tgErr) {
		// 400 Bad Request and 403 Forbidden are not retryable
		return tgErr.Code == 400 || tgErr.Code == 403
	}
	return false
}

func retryAfterSeconds(e *tgbotapi.TelegramError) int {
	if e.ResponseParams == nil {
		return 0
	}
	return int(e.ResponseParams.RetryAfter)
}
