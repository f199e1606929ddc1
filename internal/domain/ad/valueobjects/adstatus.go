package valueobjects

import "fmt"

// AdStatus is the ad lifecycle state.
type AdStatus string

const (
	AdStatusDraft         AdStatus = "DRAFT"
	AdStatusSubmitted     AdStatus = "SUBMITTED"
	AdStatusPendingReview AdStatus = "PENDING_REVIEW"
	AdStatusApproved      AdStatus = "APPROVED"
	AdStatusScheduled     AdStatus = "SCHEDULED"
	AdStatusRunning       AdStatus = "RUNNING"
	AdStatusPaused        AdStatus = "PAUSED"
	AdStatusCompleted     AdStatus = "COMPLETED"
	AdStatusRejected      AdStatus = "REJECTED"
	AdStatusCancelled     AdStatus = "CANCELLED"
)

// adStatusTransitions defines the lifecycle graph. SCHEDULED is the approved
// state for ads whose start lies in the future; CANCELLED is the terminal for
// user-deleted ads that still held reserved funds.
var adStatusTransitions = map[AdStatus][]AdStatus{
	AdStatusDraft: {
		AdStatusSubmitted,
		AdStatusCancelled,
	},
	AdStatusSubmitted: {
		AdStatusPendingReview,
		AdStatusApproved,
		AdStatusRejected,
		AdStatusDraft,
		AdStatusCancelled,
	},
	AdStatusPendingReview: {
		AdStatusApproved,
		AdStatusRejected,
		AdStatusDraft,
		AdStatusCancelled,
	},
	AdStatusApproved: {
		AdStatusRunning,
		AdStatusScheduled,
		AdStatusRejected,
		AdStatusCancelled,
	},
	AdStatusScheduled: {
		AdStatusRunning,
		AdStatusRejected,
		AdStatusCancelled,
	},
	AdStatusRunning: {
		AdStatusPaused,
		AdStatusCompleted,
	},
	AdStatusPaused: {
		AdStatusRunning,
		AdStatusCompleted,
	},
	AdStatusCompleted: {},
	AdStatusRejected:  {},
	AdStatusCancelled: {},
}

func (s AdStatus) IsValid() bool {
	_, ok := adStatusTransitions[s]
	return ok
}

func (s AdStatus) CanTransitionTo(target AdStatus) bool {
	for _, allowed := range adStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves to the target state or fails when the lifecycle graph
// forbids it.
func (s *AdStatus) TransitionTo(target AdStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition ad from %s to %s", s.String(), target.String())
	}
	*s = target
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s AdStatus) IsTerminal() bool {
	return len(adStatusTransitions[s]) == 0 && s.IsValid()
}

// IsUnderReview reports whether the ad sits in the moderation queue.
func (s AdStatus) IsUnderReview() bool {
	return s == AdStatusSubmitted || s == AdStatusPendingReview
}

// HoldsReserve reports whether advertiser funds are still escrowed for the ad.
func (s AdStatus) HoldsReserve() bool {
	return s == AdStatusSubmitted || s == AdStatusPendingReview
}

func (s AdStatus) IsRunning() bool {
	return s == AdStatusRunning
}

func (s AdStatus) String() string {
	return string(s)
}
