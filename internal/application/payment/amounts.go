// Package payment wires external gateways to the internal wallet: deposit
// initiation, one protocol adapter per provider, and the stale-transaction
// sweep. The wallet is denominated in USD; gateways that settle in UZS go
// through a fixed-point conversion with a configured rate.
package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// callbackTolerance is how far a gateway's echoed amount may drift from the
// transaction before the callback is refused, in USD.
var callbackTolerance = decimal.RequireFromString("0.01")

// usdScale is the precision deposits are converted at.
const usdScale = 6

// AmountConverter translates between the wallet's USD decimals and the
// representations gateways use on the wire: tiyin (1/100 UZS) for JSON-RPC
// and soum strings for the prepare/complete shape.
type AmountConverter struct {
	// uzsPerUSD is the configured exchange rate, e.g. "12600".
	uzsPerUSD decimal.Decimal
}

func NewAmountConverter(usdUzsRate string) (*AmountConverter, error) {
	rate, err := decimal.NewFromString(usdUzsRate)
	if err != nil {
		return nil, fmt.Errorf("invalid usd_uzs_rate %q: %w", usdUzsRate, err)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("usd_uzs_rate must be positive, got %s", rate)
	}
	return &AmountConverter{uzsPerUSD: rate}, nil
}

// TiyinToUSD converts a smallest-unit UZS amount into wallet dollars.
func (c *AmountConverter) TiyinToUSD(tiyin int64) decimal.Decimal {
	return decimal.NewFromInt(tiyin).
		Div(decimal.NewFromInt(100)).
		DivRound(c.uzsPerUSD, usdScale)
}

// USDToTiyin converts wallet dollars into the smallest-unit UZS amount.
func (c *AmountConverter) USDToTiyin(usd decimal.Decimal) int64 {
	return usd.Mul(c.uzsPerUSD).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// UZSToUSD converts a soum amount (whole UZS, possibly fractional) into
// wallet dollars.
func (c *AmountConverter) UZSToUSD(uzs decimal.Decimal) decimal.Decimal {
	return uzs.DivRound(c.uzsPerUSD, usdScale)
}
