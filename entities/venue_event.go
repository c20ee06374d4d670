package entities

import (
	"time"

	"github.com/google/uuid"
)

type VenueEvent struct {
	EventID       uuid.UUID `json:"event_id" db:"event_id"`
	Name          string    `json:"name" db:"name"`
	Venue         string    `json:"venue" db:"venue"`
	StartsAt      time.Time `json:"starts_at" db:"starts_at"`
	TotalCapacity int       `json:"total_capacity" db:"total_capacity"`
}

type VenueEventCreateResponse struct {
	EventID uuid.UUID `json:"event_id"`
}

// EventCapacity is a point-in-time snapshot of an event's attendance counter.
// current_attendance is written exclusively by the capacity ledger.
type EventCapacity struct {
	EventID           uuid.UUID `json:"event_id" db:"event_id"`
	CurrentAttendance int       `json:"current_attendance" db:"current_attendance"`
	TotalCapacity     int       `json:"total_capacity" db:"total_capacity"`
}
