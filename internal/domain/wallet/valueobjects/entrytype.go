package valueobjects

import "github.com/shopspring/decimal"

// EntryType classifies a ledger entry by the wallet operation that produced it.
type EntryType string

const (
	// External money flows.
	EntryTypeDeposit  EntryType = "DEPOSIT"
	EntryTypeEarnings EntryType = "EARNINGS"
	EntryTypeSpend    EntryType = "SPEND"
	EntryTypeWithdraw EntryType = "WITHDRAW"

	// Ad budget escrow. AD_REFUND releases escrow still held at moderation
	// time; AD_RETURN credits back unspent budget once approval has already
	// confirmed the spend.
	EntryTypeAdReserve EntryType = "AD_RESERVE"
	EntryTypeAdConfirm EntryType = "AD_CONFIRM"
	EntryTypeAdRefund  EntryType = "AD_REFUND"
	EntryTypeAdReturn  EntryType = "AD_RETURN"

	// Withdrawal escrow.
	EntryTypeReserve        EntryType = "RESERVE"
	EntryTypeReserveRelease EntryType = "RESERVE_RELEASE"

	// Two-phase deposits from providers that settle asynchronously.
	EntryTypePendingAdd     EntryType = "PENDING_ADD"
	EntryTypePendingConfirm EntryType = "PENDING_CONFIRM"
	EntryTypePendingCancel  EntryType = "PENDING_CANCEL"

	// Manual admin correction; amount keeps the caller's sign.
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeDeposit, EntryTypeEarnings, EntryTypeSpend, EntryTypeWithdraw,
		EntryTypeAdReserve, EntryTypeAdConfirm, EntryTypeAdRefund, EntryTypeAdReturn,
		EntryTypeReserve, EntryTypeReserveRelease,
		EntryTypePendingAdd, EntryTypePendingConfirm, EntryTypePendingCancel,
		EntryTypeAdjustment:
		return true
	default:
		return false
	}
}

// IsCredit reports whether the entry type adds money to the wallet total.
func (t EntryType) IsCredit() bool {
	switch t {
	case EntryTypeDeposit, EntryTypeEarnings, EntryTypeAdReturn, EntryTypePendingAdd:
		return true
	default:
		return false
	}
}

// IsDebit reports whether the entry type removes money from the wallet total.
func (t EntryType) IsDebit() bool {
	switch t {
	case EntryTypeSpend, EntryTypeWithdraw, EntryTypeAdConfirm, EntryTypePendingCancel:
		return true
	default:
		return false
	}
}

// IsBucketMove reports whether the entry type moves money between buckets of
// the same wallet without changing its total.
func (t EntryType) IsBucketMove() bool {
	switch t {
	case EntryTypeAdReserve, EntryTypeAdRefund, EntryTypeReserve, EntryTypeReserveRelease, EntryTypePendingConfirm:
		return true
	default:
		return false
	}
}

// LedgerAmount returns the signed amount recorded on the ledger for an
// operation of this type moving the given magnitude. The recorded amount is
// the net change to the wallet total (available + reserved + pending), so the
// sum of all entries for a user always reconstructs that total: credits are
// positive, debits negative, and bucket moves record zero. ADJUSTMENT passes
// the caller's sign through untouched.
func (t EntryType) LedgerAmount(amount decimal.Decimal) decimal.Decimal {
	switch {
	case t == EntryTypeAdjustment:
		return amount
	case t.IsCredit():
		return amount.Abs()
	case t.IsDebit():
		return amount.Abs().Neg()
	default:
		return decimal.Zero
	}
}

func (t EntryType) String() string {
	return string(t)
}
