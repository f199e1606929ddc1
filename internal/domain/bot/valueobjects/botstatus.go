package valueobjects

import "fmt"

// BotStatus is the bot moderation state.
type BotStatus string

const (
	BotStatusPending   BotStatus = "PENDING"
	BotStatusActive    BotStatus = "ACTIVE"
	BotStatusRejected  BotStatus = "REJECTED"
	BotStatusSuspended BotStatus = "SUSPENDED"
)

// botStatusTransitions defines the moderation graph. REJECTED and SUSPENDED
// are terminal: a rejected bot re-registers, a suspended bot stays out.
var botStatusTransitions = map[BotStatus][]BotStatus{
	BotStatusPending:   {BotStatusActive, BotStatusRejected},
	BotStatusActive:    {BotStatusSuspended},
	BotStatusRejected:  {},
	BotStatusSuspended: {},
}

func (s BotStatus) IsValid() bool {
	_, ok := botStatusTransitions[s]
	return ok
}

func (s BotStatus) CanTransitionTo(target BotStatus) bool {
	for _, allowed := range botStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves to the target state or fails when the graph forbids it.
func (s *BotStatus) TransitionTo(target BotStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition bot from %s to %s", s.String(), target.String())
	}
	*s = target
	return nil
}

func (s BotStatus) IsTerminal() bool {
	return len(botStatusTransitions[s]) == 0 && s.IsValid()
}

func (s BotStatus) IsActive() bool {
	return s == BotStatusActive
}

func (s BotStatus) String() string {
	return string(s)
}
