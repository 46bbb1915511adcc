package model

import (
	"fmt"
	"strings"
	"time"
)

// EventType categorizes job timeline events.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type EventType string

const (
	EventTypeDelivery   EventType = "delivery"
	EventTypeCollection EventType = "collection"
	EventTypeExchange   EventType = "exchange"
	EventTypeMove       EventType = "move"
	EventTypeNote       EventType = "note"
)

// Valid returns true if the EventType is known.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeDelivery, EventTypeCollection, EventTypeExchange, EventTypeMove, EventTypeNote:
		return true
	default:
		return false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for EventType.
func (t *EventType) UnmarshalText(text []byte) error {
	v := EventType(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid event type: %q", string(text))
	}
	*t = v
	return nil
}

// EventStatus describes the outcome recorded with a timeline event.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
)

// JobEvent is one immutable entry in a job's timeline. Events are append-only:
// never updated or deleted. EventOrder is strictly increasing per job; the event
// with the maximum order (ties broken by later created_at) is "the last event".
type JobEvent struct {
	ID         string      `json:"id"              db:"id"`
	JobID      string      `json:"job_id"          db:"job_id"`
	TenantID   string      `json:"tenant_id"       db:"tenant_id"`
	EventType  EventType   `json:"event_type"      db:"event_type"`
	Status     EventStatus `json:"status"          db:"status"`
	EventOrder int         `json:"event_order"     db:"event_order"`
	Notes      *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time   `json:"created_at"      db:"created_at"`
}

// AppendEventRequest represents parameters to append a timeline event.
type AppendEventRequest struct {
	JobID     string
	TenantID  string
	EventType EventType
	Status    EventStatus
	Notes     *string
}

// Validate validates the AppendEventRequest fields.
func (r *AppendEventRequest) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return fmt.Errorf("job id is required")
	}
	if strings.TrimSpace(r.TenantID) == "" {
		return fmt.Errorf("tenant id is required")
	}
	if !r.EventType.Valid() {
		return fmt.Errorf("invalid event type %q", r.EventType)
	}
	return nil
}
