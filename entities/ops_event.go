package entities

import (
	"time"

	"github.com/google/uuid"
)

// OpsEvent is the per-event operational read model, rebuilt from
// EntryAttemptRecorded_v1 events.
type OpsEvent struct {
	EventID uuid.UUID `json:"event_id"`

	GrantedCount  int            `json:"granted_count"`
	OutcomeCounts map[string]int `json:"outcome_counts"`

	LastGateID string    `json:"last_gate_id"`
	LastScanAt time.Time `json:"last_scan_at"`

	LastUpdate time.Time `json:"last_update"`
}
