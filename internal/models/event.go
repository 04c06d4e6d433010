package models

import (
	"encoding/json"
	"time"
)

// Event is the persisted form of a domain event. Payload is stored as JSONB;
// the domain codec owns its shape.
type Event struct {
	EventID       string          `db:"event_id"`
	AggregateID   string          `db:"aggregate_id"`
	AggregateType string          `db:"aggregate_type"`
	EventType     string          `db:"event_type"`
	Payload       json.RawMessage `db:"payload"`
	Version       int64           `db:"version"`
	OccurredAt    time.Time       `db:"occurred_at"`
}
