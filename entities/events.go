package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// IEvent is implemented by every domain event. Internal events stay on the
// service's own topics and are not meant for other services.
type IEvent interface {
	IsInternal() bool
}

// CapacityUpdated_v1 is published on every granted admission. It is a
// best-effort cache-invalidation signal for live watchers; the capacity
// read endpoint remains the ground truth.
type CapacityUpdated_v1 struct {
	Header EventHeader `json:"header"`

	EventID           uuid.UUID `json:"event_id"`
	CurrentAttendance int       `json:"current_attendance"`
	TotalCapacity     int       `json:"total_capacity"`
}

func (e CapacityUpdated_v1) IsInternal() bool {
	return false
}

// EntryAttemptRecorded_v1 is published through the transactional outbox in
// the same transaction that appends the attempt, so downstream consumers
// (ops read model, data lake) see every decision exactly once.
type EntryAttemptRecorded_v1 struct {
	Header EventHeader `json:"header"`

	AttemptID      uuid.UUID      `json:"attempt_id"`
	EventID        uuid.UUID      `json:"event_id"`
	TicketID       *uuid.UUID     `json:"ticket_id,omitempty"`
	CredentialKind CredentialKind `json:"credential_kind"`
	GateID         string         `json:"gate_id"`
	Outcome        AttemptOutcome `json:"outcome"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

func (e EntryAttemptRecorded_v1) IsInternal() bool {
	return true
}
