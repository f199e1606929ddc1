package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-Api-Key"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// API version prefix
	APIVersionPrefix = "/api/v1"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyBotID     = "bot_id"
	ContextKeyRequestID = "request_id"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
	ErrMsgInsufficientFunds   = "Insufficient funds"

	// Table names
	TableUsers             = "users"
	TableWallets           = "wallets"
	TableLedgerEntries     = "ledger_entries"
	TableBots              = "bots"
	TableAds               = "ads"
	TablePricingTiers      = "pricing_tiers"
	TablePlatformSettings  = "platform_settings"
	TableTransactions      = "transactions"
	TableWithdrawRequests  = "withdraw_requests"
	TableImpressions       = "impressions"
	TableClickEvents       = "click_events"
	TableBotUsers          = "bot_users"
	TableAuditLogs         = "audit_logs"
	TableReconciliations   = "payment_reconciliations"
)
