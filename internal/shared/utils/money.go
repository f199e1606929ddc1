package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount with two fractional digits for display in
// notifications. Example: 58.5 -> "$58.50"
func FormatUSD(amount decimal.Decimal) string {
	return fmt.Sprintf("$%s", amount.StringFixedBank(2))
}
