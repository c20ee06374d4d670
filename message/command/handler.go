package command

import (
	"context"

	"admissions/entities"

	"github.com/google/uuid"
)

type CapacityLedger interface {
	Recount(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
}

type Handler struct {
	ledger CapacityLedger
}

func NewHandler(ledger CapacityLedger) Handler {
	if ledger == nil {
		panic("missing ledger")
	}

	return Handler{
		ledger: ledger,
	}
}
