package valueobjects

import "fmt"

// WithdrawStatus is the payout request state.
type WithdrawStatus string

const (
	WithdrawStatusRequested     WithdrawStatus = "REQUESTED"
	WithdrawStatusPendingReview WithdrawStatus = "PENDING_REVIEW"
	WithdrawStatusApproved      WithdrawStatus = "APPROVED"
	WithdrawStatusCompleted     WithdrawStatus = "COMPLETED"
	WithdrawStatusRejected      WithdrawStatus = "REJECTED"
	WithdrawStatusCancelled     WithdrawStatus = "CANCELLED"
)

var withdrawStatusTransitions = map[WithdrawStatus][]WithdrawStatus{
	WithdrawStatusRequested:     {WithdrawStatusPendingReview, WithdrawStatusApproved, WithdrawStatusRejected, WithdrawStatusCancelled},
	WithdrawStatusPendingReview: {WithdrawStatusApproved, WithdrawStatusRejected},
	WithdrawStatusApproved:      {WithdrawStatusCompleted},
	WithdrawStatusCompleted:     {},
	WithdrawStatusRejected:      {},
	WithdrawStatusCancelled:     {},
}

func (s WithdrawStatus) IsValid() bool {
	_, ok := withdrawStatusTransitions[s]
	return ok
}

func (s WithdrawStatus) CanTransitionTo(target WithdrawStatus) bool {
	for _, allowed := range withdrawStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s *WithdrawStatus) TransitionTo(target WithdrawStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition withdrawal from %s to %s", s.String(), target.String())
	}
	*s = target
	return nil
}

func (s WithdrawStatus) IsFinal() bool {
	return len(withdrawStatusTransitions[s]) == 0 && s.IsValid()
}

// HoldsReserve reports whether wallet funds are still locked for this state.
// The reserve is confirmed on completion and released on reject or cancel.
func (s WithdrawStatus) HoldsReserve() bool {
	switch s {
	case WithdrawStatusRequested, WithdrawStatusPendingReview, WithdrawStatusApproved:
		return true
	default:
		return false
	}
}

func (s WithdrawStatus) String() string {
	return string(s)
}

// DailyCapStatuses are the states counted against the per-day withdrawal cap.
func DailyCapStatuses() []WithdrawStatus {
	return []WithdrawStatus{WithdrawStatusRequested, WithdrawStatusPendingReview, WithdrawStatusCompleted}
}
