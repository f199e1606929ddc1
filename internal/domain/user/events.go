package user

import (
	"fmt"
	"time"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/shared/events"
)

// Event types
const (
	EventTypeUserCreated = "user.created"
	EventTypeUserBanned  = "user.banned"
)

// UserCreatedEvent is emitted when a Telegram identity registers.
type UserCreatedEvent struct {
	events.BaseEvent
	UserID     uint   `json:"user_id"`
	UserSID    string `json:"user_sid"`
	TelegramID int64  `json:"telegram_id"`
}

func NewUserCreatedEvent(userID uint, userSID string, telegramID int64) UserCreatedEvent {
	return UserCreatedEvent{
		BaseEvent:  newUserBaseEvent(userID, EventTypeUserCreated),
		UserID:     userID,
		UserSID:    userSID,
		TelegramID: telegramID,
	}
}

// UserBannedEvent is emitted when an admin bans an account.
type UserBannedEvent struct {
	events.BaseEvent
	UserID  uint   `json:"user_id"`
	UserSID string `json:"user_sid"`
	Reason  string `json:"reason"`
}

func NewUserBannedEvent(userID uint, userSID string, reason string) UserBannedEvent {
	return UserBannedEvent{
		BaseEvent: newUserBaseEvent(userID, EventTypeUserBanned),
		UserID:    userID,
		UserSID:   userSID,
		Reason:    reason,
	}
}

func newUserBaseEvent(userID uint, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: fmt.Sprintf("user:%d", userID),
		EventType:   eventType,
		OccurredAt:  time.Now(),
		Version:     1,
	}
}
