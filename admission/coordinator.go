package admission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admissions/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

type CredentialResolver interface {
	FindByQr(ctx context.Context, eventID uuid.UUID, qrPayload string) (entities.Ticket, error)
	FindByNfcTag(ctx context.Context, eventID uuid.UUID, nfcTagID string) (entities.Ticket, error)
}

type AdmissionGuard interface {
	Admit(ctx context.Context, ticketID uuid.UUID) (entities.AdmissionDecision, error)
}

type CapacityLedger interface {
	Increment(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
	Read(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
}

type AuditTrail interface {
	Append(ctx context.Context, attempt entities.EntryAttempt) error
}

type Broadcaster interface {
	Publish(ctx context.Context, capacity entities.EventCapacity) error
}

type Request struct {
	CredentialKind  entities.CredentialKind
	CredentialValue string
	EventID         uuid.UUID
	GateID          string
}

type Result struct {
	Outcome entities.AttemptOutcome

	// set only for granted admissions
	Ticket   *entities.Ticket
	Capacity *entities.EventCapacity
}

const (
	auditAppendAttempts = 3
	auditAppendBackoff  = 100 * time.Millisecond
)

// Coordinator runs one scan request end to end: resolve the credential,
// attempt the exactly-once admission, bump the attendance counter, record
// the attempt, broadcast the new count.
type Coordinator struct {
	resolver    CredentialResolver
	guard       AdmissionGuard
	ledger      CapacityLedger
	audit       AuditTrail
	broadcaster Broadcaster
}

func NewCoordinator(
	resolver CredentialResolver,
	guard AdmissionGuard,
	ledger CapacityLedger,
	audit AuditTrail,
	broadcaster Broadcaster,
) Coordinator {
	if resolver == nil {
		panic("missing resolver")
	}
	if guard == nil {
		panic("missing guard")
	}
	if ledger == nil {
		panic("missing ledger")
	}
	if audit == nil {
		panic("missing audit")
	}
	if broadcaster == nil {
		panic("missing broadcaster")
	}

	return Coordinator{
		resolver:    resolver,
		guard:       guard,
		ledger:      ledger,
		audit:       audit,
		broadcaster: broadcaster,
	}
}

func (c Coordinator) Admit(ctx context.Context, req Request) (Result, error) {
	ticket, err := c.resolve(ctx, req)
	if errors.Is(err, entities.ErrTicketNotFound) {
		c.record(ctx, req, nil, entities.OutcomeDeniedNotFound)
		return Result{Outcome: entities.OutcomeDeniedNotFound}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("could not resolve credential: %w", err)
	}

	decision, err := c.guard.Admit(ctx, ticket.TicketID)
	if errors.Is(err, entities.ErrTicketNotFound) {
		// ticket vanished between resolution and admission
		c.record(ctx, req, nil, entities.OutcomeDeniedNotFound)
		return Result{Outcome: entities.OutcomeDeniedNotFound}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("could not admit ticket: %w", err)
	}

	switch decision {
	case entities.DecisionAlreadyAdmitted:
		c.record(ctx, req, &ticket.TicketID, entities.OutcomeDeniedDuplicate)
		return Result{Outcome: entities.OutcomeDeniedDuplicate}, nil
	case entities.DecisionNotAdmissible:
		c.record(ctx, req, &ticket.TicketID, entities.OutcomeDeniedInvalidState)
		return Result{Outcome: entities.OutcomeDeniedInvalidState}, nil
	}

	// admitted; the counter is derived from the audit trail, so an increment
	// failure here is not fatal - the recount command reconciles it later.
	// The ticket state already changed, so from here on the scanner hanging
	// up must not cancel the writes that record what happened.
	ctx = context.WithoutCancel(ctx)

	var capacity *entities.EventCapacity
	incremented, err := c.ledger.Increment(ctx, req.EventID)
	if err != nil {
		log.FromContext(ctx).
			WithError(err).
			WithField("ticket_id", ticket.TicketID).
			Error("Ticket admitted but attendance increment failed; recount needed")
	} else {
		capacity = &incremented
	}

	c.record(ctx, req, &ticket.TicketID, entities.OutcomeGranted)

	if capacity != nil {
		if err := c.broadcaster.Publish(ctx, *capacity); err != nil {
			// broadcast is a best-effort signal; watchers fall back to reads
			log.FromContext(ctx).
				WithError(err).
				WithField("event_id", req.EventID).
				Error("Could not broadcast capacity update")
		}
	}

	ticket.Status = entities.TicketStatusAdmitted
	return Result{
		Outcome:  entities.OutcomeGranted,
		Ticket:   &ticket,
		Capacity: capacity,
	}, nil
}

func (c Coordinator) resolve(ctx context.Context, req Request) (entities.Ticket, error) {
	if req.CredentialKind == entities.CredentialKindNFC {
		return c.resolver.FindByNfcTag(ctx, req.EventID, req.CredentialValue)
	}
	return c.resolver.FindByQr(ctx, req.EventID, req.CredentialValue)
}

// record appends the audit entry for a decision. The append never fails the
// admission response: it is retried a few times and logged loudly if it
// still cannot be written. The attempt id is stable across retries, so the
// append stays idempotent.
func (c Coordinator) record(ctx context.Context, req Request, ticketID *uuid.UUID, outcome entities.AttemptOutcome) {
	// the decision is already made; a cancelled scan request must not be
	// able to keep it out of the audit trail
	ctx = context.WithoutCancel(ctx)

	attempt := entities.EntryAttempt{
		AttemptID:      uuid.New(),
		EventID:        req.EventID,
		TicketID:       ticketID,
		CredentialKind: req.CredentialKind,
		GateID:         req.GateID,
		Outcome:        outcome,
		OccurredAt:     time.Now().UTC(),
	}

	var err error
	for i := 0; i < auditAppendAttempts; i++ {
		if err = c.audit.Append(ctx, attempt); err == nil {
			return
		}
		time.Sleep(auditAppendBackoff)
	}

	log.FromContext(ctx).
		WithError(err).
		WithField("event_id", req.EventID).
		WithField("outcome", outcome).
		Error("Could not record entry attempt")
}
