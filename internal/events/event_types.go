package events

import (
	"time"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInteractionCreated EventType = "interaction_created"
	EventInteractionUpdated EventType = "interaction_updated"
	EventStatusChanged      EventType = "interaction_status_changed"
	EventReminderSet        EventType = "interaction_reminder_set"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string `json:"user_id"`
	AgencyID string `json:"agency_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	InteractionID string      `json:"interaction_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// InteractionCreatedPayload payload.
type InteractionCreatedPayload struct {
	RelationMode domain.RelationMode `json:"relation_mode"`
	Channel      string              `json:"channel"`
	CompanyName  string              `json:"company_name"`
	Subject      string              `json:"subject"`
	StatusID     string              `json:"status_id"`
}

// InteractionUpdatedPayload payload.
type InteractionUpdatedPayload struct {
	EventTypes []domain.TimelineEventType `json:"event_types"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatusID string `json:"old_status_id"`
	NewStatusID string `json:"new_status_id"`
	Terminal    bool   `json:"terminal"`
}

// ReminderSetPayload payload.
type ReminderSetPayload struct {
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
}
