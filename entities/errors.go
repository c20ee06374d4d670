package entities

import "errors"

var (
	// ErrTicketNotFound means the scanned credential maps to no ticket for
	// the event. Expected and frequent, not a system fault.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrEventNotFound means the event id is unknown to the capacity store.
	ErrEventNotFound = errors.New("event not found")

	// ErrCredentialTaken means a ticket with the same QR payload is already
	// registered for the event.
	ErrCredentialTaken = errors.New("credential already registered for event")
)
