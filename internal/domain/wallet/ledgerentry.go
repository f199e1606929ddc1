package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/wallet/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/id"
)

// Reference types linking a ledger entry to the record that caused it.
const (
	RefTypeAd          = "AD"
	RefTypeImpression  = "IMPRESSION"
	RefTypeTransaction = "TRANSACTION"
	RefTypeWithdrawal  = "WITHDRAWAL"
	RefTypeAdmin       = "ADMIN"
)

// LedgerEntry is one immutable row of the wallet audit trail. The amount is
// the signed net change to the wallet total and the balance is the total
// right after the entry, so replaying entries in order reconstructs every
// intermediate balance.
type LedgerEntry struct {
	id          uint
	sid         string
	userID      uint
	entryType   vo.EntryType
	amount      decimal.Decimal
	balance     decimal.Decimal
	refID       string
	refType     string
	description string
	createdAt   time.Time
}

// NewLedgerEntry creates a ledger entry for an operation of the given type.
// The amount must already carry the sign the entry type dictates; see
// EntryType.LedgerAmount.
func NewLedgerEntry(userID uint, entryType vo.EntryType, amount, balance decimal.Decimal, description string) (*LedgerEntry, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !entryType.IsValid() {
		return nil, fmt.Errorf("invalid entry type: %s", entryType)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("balance cannot be negative")
	}

	switch {
	case entryType.IsCredit() && !amount.IsPositive():
		return nil, fmt.Errorf("%s entry requires a positive amount", entryType)
	case entryType.IsDebit() && !amount.IsNegative():
		return nil, fmt.Errorf("%s entry requires a negative amount", entryType)
	case entryType.IsBucketMove() && !amount.IsZero():
		return nil, fmt.Errorf("%s entry must not change the wallet total", entryType)
	case entryType == vo.EntryTypeAdjustment && amount.IsZero():
		return nil, fmt.Errorf("adjustment entry requires a non-zero amount")
	}

	return &LedgerEntry{
		sid:         id.NewLedgerSID(),
		userID:      userID,
		entryType:   entryType,
		amount:      amount,
		balance:     balance,
		description: description,
		createdAt:   biztime.NowUTC(),
	}, nil
}

// SetReference links the entry to the ad, transaction or withdrawal that
// caused it. Valid only before the entry is persisted.
func (e *LedgerEntry) SetReference(refID, refType string) {
	e.refID = refID
	e.refType = refType
}

func (e *LedgerEntry) ID() uint {
	return e.id
}

func (e *LedgerEntry) SID() string {
	return e.sid
}

func (e *LedgerEntry) UserID() uint {
	return e.userID
}

func (e *LedgerEntry) EntryType() vo.EntryType {
	return e.entryType
}

func (e *LedgerEntry) Amount() decimal.Decimal {
	return e.amount
}

func (e *LedgerEntry) Balance() decimal.Decimal {
	return e.balance
}

func (e *LedgerEntry) RefID() string {
	return e.refID
}

func (e *LedgerEntry) RefType() string {
	return e.refType
}

func (e *LedgerEntry) Description() string {
	return e.description
}

func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}

// SetID sets the entry ID after persistence (used by repository after Create)
func (e *LedgerEntry) SetID(id uint) {
	e.id = id
}

// ReconstructLedgerEntry rebuilds a LedgerEntry from persistence without validation.
func ReconstructLedgerEntry(
	entryID uint,
	sid string,
	userID uint,
	entryType vo.EntryType,
	amount, balance decimal.Decimal,
	refID, refType, description string,
	createdAt time.Time,
) *LedgerEntry {
	return &LedgerEntry{
		id:          entryID,
		sid:         sid,
		userID:      userID,
		entryType:   entryType,
		amount:      amount,
		balance:     balance,
		refID:       refID,
		refType:     refType,
		description: description,
		createdAt:   createdAt,
	}
}
