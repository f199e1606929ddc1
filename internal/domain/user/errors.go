package user

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserBanned is returned when a banned account attempts an operation.
	ErrUserBanned = errors.New("user is banned")

	// ErrUserInactive is returned when a deactivated account attempts an operation.
	ErrUserInactive = errors.New("user is deactivated")

	// ErrAlreadyBanned is returned when banning an already banned account.
	ErrAlreadyBanned = errors.New("user is already banned")

	// ErrNotBanned is returned when unbanning an account that is not banned.
	ErrNotBanned = errors.New("user is not banned")

	// ErrTelegramIDTaken is returned when the Telegram identity is already registered.
	ErrTelegramIDTaken = errors.New("telegram ID is already registered")
)
