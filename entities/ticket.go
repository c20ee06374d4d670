package entities

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusAdmissible TicketStatus = "admissible"
	TicketStatusAdmitted   TicketStatus = "admitted"
	TicketStatusCancelled  TicketStatus = "cancelled"
	TicketStatusRefunded   TicketStatus = "refunded"
)

type Money struct {
	Amount   string `json:"amount" db:"amount"`
	Currency string `json:"currency" db:"currency"`
}

type Ticket struct {
	TicketID uuid.UUID `json:"ticket_id" db:"ticket_id"`
	EventID  uuid.UUID `json:"event_id" db:"event_id"`

	QrPayload string  `json:"qr_payload" db:"qr_payload"`
	NfcTagID  *string `json:"nfc_tag_id,omitempty" db:"nfc_tag_id"`

	Status TicketStatus `json:"status" db:"status"`

	// Seat and price are opaque purchase metadata, carried for display only.
	Seat  *string `json:"seat,omitempty" db:"seat"`
	Price Money   `json:"price" db:"price"`

	AdmittedAt *time.Time `json:"admitted_at,omitempty" db:"admitted_at"`
}

// AdmissionDecision is the result of the atomic admissible->admitted
// transition. Exactly one of N concurrent attempts for the same ticket
// observes DecisionAdmitted.
type AdmissionDecision string

const (
	DecisionAdmitted        AdmissionDecision = "admitted"
	DecisionAlreadyAdmitted AdmissionDecision = "already_admitted"
	DecisionNotAdmissible   AdmissionDecision = "not_admissible"
)
