package moderation

import "context"

// AutoRejectConfidence is the safety-check score above which a flagged ad is
// rejected without reaching a human moderator.
const AutoRejectConfidence = 0.9

// SafetyResult is the outcome of a content safety check.
type SafetyResult struct {
	Flagged    bool
	Confidence float64
	Flags      []string
}

// ShouldAutoReject reports whether the result forces an automatic rejection.
func (r *SafetyResult) ShouldAutoReject() bool {
	return r != nil && r.Flagged && r.Confidence > AutoRejectConfidence
}

// AdContent is the creative surface handed to the safety check.
type AdContent struct {
	Text        string
	HTMLContent string
	MediaURL    string
	ButtonURLs  []string
}

// SafetyChecker screens ad content before approval. Implementations may call
// an external classifier; a nil checker disables the hook.
type SafetyChecker interface {
	CheckAd(ctx context.Context, content AdContent) (*SafetyResult, error)
}

// AuditLogRepository persists admin action records.
type AuditLogRepository interface {
	// Create appends an audit row
	Create(ctx context.Context, log *AuditLog) error

	// ListByEntity returns the audit trail for one entity, newest first
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]*AuditLog, error)

	// ListByModerator returns recent actions by one admin, newest first
	ListByModerator(ctx context.Context, moderatorID uint, limit int) ([]*AuditLog, error)
}
