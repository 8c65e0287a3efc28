package domain

import "time"

// TimelineEventType captures what kind of change a timeline entry records.
type TimelineEventType string

const (
	EventCreation       TimelineEventType = "creation"
	EventNote           TimelineEventType = "note"
	EventStatusChange   TimelineEventType = "status_change"
	EventReminderChange TimelineEventType = "reminder_change"
	EventOrderRefChange TimelineEventType = "order_ref_change"
)

// TimelineEvent is an immutable, append-only record of a change made to an
// interaction. Entries are never mutated or removed once created.
type TimelineEvent struct {
	ID            string
	InteractionID string
	Date          time.Time
	Type          TimelineEventType
	Content       string
}

// Interaction is the aggregate for recorded client/prospect interactions.
// Mutable fields are only ever changed through the timeline builder's patch
// so that every mutation leaves a timeline entry behind.
type Interaction struct {
	ID              string
	AgencyID        string
	CreatedBy       string
	Channel         string
	EntityType      string
	RelationMode    RelationMode
	EntityID        *string
	ContactID       *string
	CompanyName     string
	ContactName     string
	ContactService  string
	InteractionType string
	Subject         string
	MegaFamilies    []string

	StatusID         string
	StatusLabel      string
	StatusIsTerminal bool
	ReminderAt       *time.Time
	OrderRef         string
	LastActionAt     time.Time

	CreatedAt time.Time
	Timeline  []TimelineEvent
}

// InteractionUpdate is the sparse patch produced by the timeline builder.
// Nil pointers mean "leave untouched"; ReminderChanged with a nil ReminderAt
// clears the reminder.
type InteractionUpdate struct {
	StatusID         *string
	StatusLabel      *string
	StatusIsTerminal *bool
	ReminderChanged  bool
	ReminderAt       *time.Time
	OrderRef         *string
	LastActionAt     *time.Time
}
