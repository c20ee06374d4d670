package entities

import "time"

// DataLakeEvent is the raw archived form of a published domain event.
type DataLakeEvent struct {
	EventID      string    `json:"event_id" db:"event_id"`
	PublishedAt  time.Time `json:"published_at" db:"published_at"`
	EventName    string    `json:"event_name" db:"event_name"`
	EventPayload []byte    `json:"event_payload" db:"event_payload"`
}
