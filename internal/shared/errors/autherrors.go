package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidLoginCode ErrorType = "invalid_login_code"
	ErrorTypeLoginExpired     ErrorType = "login_expired"
	ErrorTypeAccountBanned    ErrorType = "account_banned"
	ErrorTypeAccountInactive  ErrorType = "account_inactive"
	ErrorTypeTokenExpired     ErrorType = "token_expired"
	ErrorTypeTokenInvalid     ErrorType = "token_invalid"
	ErrorTypeAPIKeyRevoked    ErrorType = "api_key_revoked"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged
	// Some auth errors (like a mistyped login code) are expected and don't need error-level logging
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidLoginCodeError creates an error for a wrong confirmation code pick.
// The session stays pending; the caller may retry with another code.
func NewInvalidLoginCodeError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidLoginCode,
			Message: "Invalid confirmation code",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false, // Expected error, don't clutter logs
		SecurityEvent: true,  // Track for brute force detection
	}
}

// NewLoginExpiredError creates an error for a consumed or expired login session
func NewLoginExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeLoginExpired,
			Message: "Login session expired or already used",
			Code:    http.StatusUnauthorized,
			Details: "Start a new login from the app",
		},
		ShouldLog:     false, // Normal expiration
		SecurityEvent: false,
	}
}

// NewAccountBannedError creates an error for banned accounts
func NewAccountBannedError(details ...string) *AuthError {
	detail := "Account has been banned. Contact support"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountBanned,
			Message: "Account is banned",
			Code:    http.StatusForbidden,
			Details: detail,
		},
		ShouldLog:     true, // Important to log
		SecurityEvent: true, // Security-relevant
	}
}

// NewAccountInactiveError creates an error for inactive accounts
func NewAccountInactiveError(details ...string) *AuthError {
	detail := "Account is not active"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountInactive,
			Message: "Account is not active",
			Code:    http.StatusForbidden,
			Details: detail,
		},
		ShouldLog:     false, // Expected state
		SecurityEvent: false,
	}
}

// NewTokenExpiredError creates an error for expired tokens (access, refresh, API key)
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false, // Normal expiration
		SecurityEvent: false,
	}
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog:     true, // May indicate tampering
		SecurityEvent: true, // Potential security issue
	}
}

// NewAPIKeyRevokedError creates an error for revoked or rotated bot API keys
func NewAPIKeyRevokedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAPIKeyRevoked,
			Message: "API key has been revoked",
			Code:    http.StatusUnauthorized,
			Details: "Request a new key from the bot settings",
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
// This helps reduce noise in logs from expected auth failures
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true // Default to logging if not an AuthError
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
