package entities

import "github.com/google/uuid"

// RecountAttendance rebuilds an event's attendance counter from the count of
// granted entry attempts. Used to reconcile the derived counter after a
// partial failure between admission and increment.
type RecountAttendance struct {
	Header EventHeader `json:"header"`

	EventID uuid.UUID `json:"event_id"`
}
