package entities

import (
	"time"

	"github.com/google/uuid"
)

type CredentialKind string

const (
	CredentialKindQR  CredentialKind = "qr"
	CredentialKindNFC CredentialKind = "nfc"
)

type AttemptOutcome string

const (
	OutcomeGranted            AttemptOutcome = "granted"
	OutcomeDeniedNotFound     AttemptOutcome = "denied_not_found"
	OutcomeDeniedInvalidState AttemptOutcome = "denied_invalid_state"
	OutcomeDeniedDuplicate    AttemptOutcome = "denied_duplicate"
)

// EntryAttempt is the append-only audit record of one admission decision.
// TicketID is nil when credential resolution failed. The attempt log is the
// source of truth for attendance; the counter on venue_events is derived
// from it and can be recomputed by replay.
type EntryAttempt struct {
	AttemptID      uuid.UUID      `json:"attempt_id" db:"attempt_id"`
	EventID        uuid.UUID      `json:"event_id" db:"event_id"`
	TicketID       *uuid.UUID     `json:"ticket_id,omitempty" db:"ticket_id"`
	CredentialKind CredentialKind `json:"credential_kind" db:"credential_kind"`
	GateID         string         `json:"gate_id" db:"gate_id"`
	Outcome        AttemptOutcome `json:"outcome" db:"outcome"`
	OccurredAt     time.Time      `json:"occurred_at" db:"occurred_at"`
}
