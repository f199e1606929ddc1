package payment

import (
	"time"

	vo "github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/payment/valueobjects"
	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

// ReconciliationEntry keeps the raw payload of a gateway callback that could
// not be matched to a local transaction, so support can settle it by hand.
type ReconciliationEntry struct {
	id           uint
	provider     vo.Provider
	providerTxID string
	method       string
	rawPayload   string
	resolved     bool
	note         string
	createdAt    time.Time
}

func NewReconciliationEntry(provider vo.Provider, providerTxID, method, rawPayload string) *ReconciliationEntry {
	return &ReconciliationEntry{
		provider:     provider,
		providerTxID: providerTxID,
		method:       method,
		rawPayload:   rawPayload,
		createdAt:    biztime.NowUTC(),
	}
}

func (e *ReconciliationEntry) ID() uint             { return e.id }
func (e *ReconciliationEntry) Provider() vo.Provider { return e.provider }
func (e *ReconciliationEntry) ProviderTxID() string { return e.providerTxID }
func (e *ReconciliationEntry) Method() string       { return e.method }
func (e *ReconciliationEntry) RawPayload() string   { return e.rawPayload }
func (e *ReconciliationEntry) IsResolved() bool     { return e.resolved }
func (e *ReconciliationEntry) Note() string         { return e.note }
func (e *ReconciliationEntry) CreatedAt() time.Time { return e.createdAt }

func (e *ReconciliationEntry) SetID(id uint) { e.id = id }

// ReconciliationReconstructParams carries persisted state back in.
type ReconciliationReconstructParams struct {
	ID           uint
	Provider     vo.Provider
	ProviderTxID string
	Method       string
	RawPayload   string
	Resolved     bool
	Note         string
	CreatedAt    time.Time
}

func ReconstructReconciliationEntry(params ReconciliationReconstructParams) *ReconciliationEntry {
	return &ReconciliationEntry{
		id:           params.ID,
		provider:     params.Provider,
		providerTxID: params.ProviderTxID,
		method:       params.Method,
		rawPayload:   params.RawPayload,
		resolved:     params.Resolved,
		note:         params.Note,
		createdAt:    params.CreatedAt,
	}
}
