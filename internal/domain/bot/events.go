package bot

import (
	"fmt"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/shared/events"
)

// Event types
const (
	EventTypeBotRegistered = "bot.registered"
	EventTypeBotApproved   = "bot.approved"
	EventTypeBotSuspended  = "bot.suspended"
)

func newBotBaseEvent(botSID, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: fmt.Sprintf("bot:%s", botSID),
		EventType:   eventType,
		OccurredAt:  time.Now(),
		Version:     1,
	}
}

// BotRegisteredEvent is emitted when an owner enrolls a new bot for review.
type BotRegisteredEvent struct {
	events.BaseEvent
	BotSID   string `json:"bot_sid"`
	OwnerID  uint   `json:"owner_id"`
	Username string `json:"username"`
}

func NewBotRegisteredEvent(b *Bot) BotRegisteredEvent {
	return BotRegisteredEvent{
		BaseEvent: newBotBaseEvent(b.SID(), EventTypeBotRegistered),
		BotSID:    b.SID(),
		OwnerID:   b.OwnerID(),
		Username:  b.Username(),
	}
}

// BotApprovedEvent is emitted when moderation activates a bot.
type BotApprovedEvent struct {
	events.BaseEvent
	BotSID  string `json:"bot_sid"`
	OwnerID uint   `json:"owner_id"`
}

func NewBotApprovedEvent(b *Bot) BotApprovedEvent {
	return BotApprovedEvent{
		BaseEvent: newBotBaseEvent(b.SID(), EventTypeBotApproved),
		BotSID:    b.SID(),
		OwnerID:   b.OwnerID(),
	}
}

// BotSuspendedEvent is emitted when a bot is pulled from rotation.
type BotSuspendedEvent struct {
	events.BaseEvent
	BotSID  string `json:"bot_sid"`
	OwnerID uint   `json:"owner_id"`
	Reason  string `json:"reason"`
}

func NewBotSuspendedEvent(b *Bot, reason string) BotSuspendedEvent {
	return BotSuspendedEvent{
		BaseEvent: newBotBaseEvent(b.SID(), EventTypeBotSuspended),
		BotSID:    b.SID(),
		OwnerID:   b.OwnerID(),
		Reason:    reason,
	}
}
