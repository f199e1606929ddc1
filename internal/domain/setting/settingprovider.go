package setting

import (
	"context"

	"github.com/shopspring/decimal"
)

// Provider gives services typed access to hot-reloadable platform settings.
// Implementations read through a cache and fall back to seeded defaults, so
// the getters never fail; callers depend on this interface instead of the
// concrete application-layer service.
type Provider interface {
	// PlatformFeePercentage is the platform's cut of ad spend, 0-100.
	PlatformFeePercentage(ctx context.Context) decimal.Decimal

	// DefaultBaseCPM prices impressions not covered by any tier.
	DefaultBaseCPM(ctx context.Context) decimal.Decimal

	// MinWithdrawUSD is the smallest allowed payout request.
	MinWithdrawUSD(ctx context.Context) decimal.Decimal

	// MaxDailyWithdrawUSD caps one user's requests per UTC day.
	MaxDailyWithdrawUSD(ctx context.Context) decimal.Decimal

	// WithdrawFeeUSD is the fixed fee charged per payout.
	WithdrawFeeUSD(ctx context.Context) decimal.Decimal

	// AdFrequencyMinutes is the default spacing for bots without an override.
	AdFrequencyMinutes(ctx context.Context) int

	// PendingTxTTLMinutes is how long a PENDING deposit may stay open.
	PendingTxTTLMinutes(ctx context.Context) int

	// IsMaintenanceMode pauses ad delivery platform-wide.
	IsMaintenanceMode(ctx context.Context) bool
}
