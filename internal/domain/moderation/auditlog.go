package moderation

import (
	"errors"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/shared/biztime"
)

// Kind is the class of entity under moderation.
type Kind string

const (
	KindAd         Kind = "AD"
	KindBot        Kind = "BOT"
	KindWithdrawal Kind = "WITHDRAWAL"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindAd, KindBot, KindWithdrawal:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }

// Audit actions recorded by moderation, settings and payout flows.
const (
	ActionApprove        = "approve"
	ActionReject         = "reject"
	ActionRequestEdit    = "request_edit"
	ActionTakeReview     = "take_review"
	ActionSuspend        = "suspend"
	ActionBan            = "ban"
	ActionUnban          = "unban"
	ActionSettingsUpdate = "settings_update"
	ActionAdjustBalance  = "adjust_balance"
)

var (
	ErrAuditModeratorRequired = errors.New("moderator is required")
	ErrAuditActionRequired    = errors.New("action is required")
	ErrAuditEntityRequired    = errors.New("entity type and id are required")
)

// AuditLog is one immutable record of an admin action.
type AuditLog struct {
	id          uint
	moderatorID uint
	action      string
	entityType  string
	entityID    string
	metadata    map[string]interface{}
	createdAt   time.Time
}

func NewAuditLog(moderatorID uint, action, entityType, entityID string, metadata map[string]interface{}) (*AuditLog, error) {
	if moderatorID == 0 {
		return nil, ErrAuditModeratorRequired
	}
	if action == "" {
		return nil, ErrAuditActionRequired
	}
	if entityType == "" || entityID == "" {
		return nil, ErrAuditEntityRequired
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &AuditLog{
		moderatorID: moderatorID,
		action:      action,
		entityType:  entityType,
		entityID:    entityID,
		metadata:    metadata,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func (a *AuditLog) ID() uint                          { return a.id }
func (a *AuditLog) ModeratorID() uint                 { return a.moderatorID }
func (a *AuditLog) Action() string                    { return a.action }
func (a *AuditLog) EntityType() string                { return a.entityType }
func (a *AuditLog) EntityID() string                  { return a.entityID }
func (a *AuditLog) Metadata() map[string]interface{}  { return a.metadata }
func (a *AuditLog) CreatedAt() time.Time              { return a.createdAt }

func (a *AuditLog) SetID(id uint) { a.id = id }

// AuditLogReconstructParams carries persisted state back in.
type AuditLogReconstructParams struct {
	ID          uint
	ModeratorID uint
	Action      string
	EntityType  string
	EntityID    string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}

func ReconstructAuditLog(params AuditLogReconstructParams) *AuditLog {
	metadata := params.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &AuditLog{
		id:          params.ID,
		moderatorID: params.ModeratorID,
		action:      params.Action,
		entityType:  params.EntityType,
		entityID:    params.EntityID,
		metadata:    metadata,
		createdAt:   params.CreatedAt,
	}
}
