package ad

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeveloperSardor/akhmads-net-backend-sub000/internal/domain/shared/events"
)

// Event types
const (
	EventTypeAdSubmitted     = "ad.submitted"
	EventTypeAdApproved      = "ad.approved"
	EventTypeAdRejected      = "ad.rejected"
	EventTypeAdEditRequested = "ad.edit_requested"
	EventTypeAdCompleted     = "ad.completed"
)

// AdSubmittedEvent is emitted when an advertiser sends a draft to moderation.
type AdSubmittedEvent struct {
	events.BaseEvent
	AdID         uint            `json:"ad_id"`
	AdSID        string          `json:"ad_sid"`
	AdvertiserID uint            `json:"advertiser_id"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

func NewAdSubmittedEvent(adID uint, adSID string, advertiserID uint, totalCost decimal.Decimal) AdSubmittedEvent {
	return AdSubmittedEvent{
		BaseEvent:    newAdBaseEvent(adID, EventTypeAdSubmitted),
		AdID:         adID,
		AdSID:        adSID,
		AdvertiserID: advertiserID,
		TotalCost:    totalCost,
	}
}

// AdApprovedEvent is emitted when moderation accepts an ad.
type AdApprovedEvent struct {
	events.BaseEvent
	AdID         uint   `json:"ad_id"`
	AdSID        string `json:"ad_sid"`
	AdvertiserID uint   `json:"advertiser_id"`
	ModeratorID  uint   `json:"moderator_id"`
	LandedStatus string `json:"landed_status"`
}

func NewAdApprovedEvent(adID uint, adSID string, advertiserID, moderatorID uint, landedStatus string) AdApprovedEvent {
	return AdApprovedEvent{
		BaseEvent:    newAdBaseEvent(adID, EventTypeAdApproved),
		AdID:         adID,
		AdSID:        adSID,
		AdvertiserID: advertiserID,
		ModeratorID:  moderatorID,
		LandedStatus: landedStatus,
	}
}

// AdRejectedEvent is emitted when moderation declines an ad.
type AdRejectedEvent struct {
	events.BaseEvent
	AdID         uint   `json:"ad_id"`
	AdSID        string `json:"ad_sid"`
	AdvertiserID uint   `json:"advertiser_id"`
	ModeratorID  uint   `json:"moderator_id"`
	Reason       string `json:"reason"`
}

func NewAdRejectedEvent(adID uint, adSID string, advertiserID, moderatorID uint, reason string) AdRejectedEvent {
	return AdRejectedEvent{
		BaseEvent:    newAdBaseEvent(adID, EventTypeAdRejected),
		AdID:         adID,
		AdSID:        adSID,
		AdvertiserID: advertiserID,
		ModeratorID:  moderatorID,
		Reason:       reason,
	}
}

// AdEditRequestedEvent is emitted when moderation sends an ad back to draft.
type AdEditRequestedEvent struct {
	events.BaseEvent
	AdID         uint   `json:"ad_id"`
	AdSID        string `json:"ad_sid"`
	AdvertiserID uint   `json:"advertiser_id"`
	ModeratorID  uint   `json:"moderator_id"`
	Feedback     string `json:"feedback"`
}

func NewAdEditRequestedEvent(adID uint, adSID string, advertiserID, moderatorID uint, feedback string) AdEditRequestedEvent {
	return AdEditRequestedEvent{
		BaseEvent:    newAdBaseEvent(adID, EventTypeAdEditRequested),
		AdID:         adID,
		AdSID:        adSID,
		AdvertiserID: advertiserID,
		ModeratorID:  moderatorID,
		Feedback:     feedback,
	}
}

// AdCompletedEvent is emitted when delivery finishes.
type AdCompletedEvent struct {
	events.BaseEvent
	AdID                 uint   `json:"ad_id"`
	AdSID                string `json:"ad_sid"`
	AdvertiserID         uint   `json:"advertiser_id"`
	DeliveredImpressions int64  `json:"delivered_impressions"`
}

func NewAdCompletedEvent(adID uint, adSID string, advertiserID uint, delivered int64) AdCompletedEvent {
	return AdCompletedEvent{
		BaseEvent:            newAdBaseEvent(adID, EventTypeAdCompleted),
		AdID:                 adID,
		AdSID:                adSID,
		AdvertiserID:         advertiserID,
		DeliveredImpressions: delivered,
	}
}

func newAdBaseEvent(adID uint, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: fmt.Sprintf("ad:%d", adID),
		EventType:   eventType,
		OccurredAt:  time.Now(),
		Version:     1,
	}
}
