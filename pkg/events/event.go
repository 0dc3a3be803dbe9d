package events

import "time"

// Event types published for the surrounding platform.
const (
	TypeProfileIngested = "PROFILE_INGESTED"
	TypeProfileDeleted  = "PROFILE_DELETED"
)

// Event defines the contract for all engine events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PROFILE_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used for engine events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
