package http

import (
	"context"

	"admissions/admission"
	"admissions/broadcast"
	"admissions/entities"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"
)

type Handler struct {
	coordinator AdmissionCoordinator
	ledger      CapacityReader
	ticketRepo  TicketRepository
	eventRepo   EventRepository
	opsRepo     OpsEventRepository
	attemptRepo EntryAttemptRepository
	cmdBus      *cqrs.CommandBus
	hub         *broadcast.Hub
}

type AdmissionCoordinator interface {
	Admit(ctx context.Context, req admission.Request) (admission.Result, error)
}

type CapacityReader interface {
	Read(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket entities.Ticket) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event entities.VenueEvent) (entities.VenueEventCreateResponse, error)
}

type OpsEventRepository interface {
	GetByID(ctx context.Context, eventID uuid.UUID) (entities.OpsEvent, error)
}

type EntryAttemptRepository interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entities.EntryAttempt, error)
}
