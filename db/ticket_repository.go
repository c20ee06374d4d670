package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"admissions/entities"

	"github.com/google/uuid"
)

type ITicketRepository interface {
	Create(ctx context.Context, ticket entities.Ticket) error
	FindByQr(ctx context.Context, eventID uuid.UUID, qrPayload string) (entities.Ticket, error)
	FindByNfcTag(ctx context.Context, eventID uuid.UUID, nfcTagID string) (entities.Ticket, error)
	Admit(ctx context.Context, ticketID uuid.UUID) (entities.AdmissionDecision, error)
}

type TicketRepository struct {
	db *DB
}

func NewTicketRepo(db *DB) TicketRepository {
	if db == nil {
		panic("db is nil")
	}
	return TicketRepository{
		db: db,
	}
}

func (tr TicketRepository) Create(ctx context.Context, ticket entities.Ticket) error {
	_, err := tr.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			tickets (ticket_id, event_id, qr_payload, nfc_tag_id, status, seat, price_amount, price_currency)
		VALUES
			(:ticket_id, :event_id, :qr_payload, :nfc_tag_id, :status, :seat, :price.amount, :price.currency)`,
		ticket,
	)
	if isErrorUniqueViolation(err) {
		return entities.ErrCredentialTaken
	}
	if err != nil {
		return fmt.Errorf("could not save ticket: %w", err)
	}
	return nil
}

func (tr TicketRepository) FindByQr(ctx context.Context, eventID uuid.UUID, qrPayload string) (entities.Ticket, error) {
	return tr.find(ctx, `qr_payload`, eventID, qrPayload)
}

func (tr TicketRepository) FindByNfcTag(ctx context.Context, eventID uuid.UUID, nfcTagID string) (entities.Ticket, error) {
	return tr.find(ctx, `nfc_tag_id`, eventID, nfcTagID)
}

func (tr TicketRepository) find(ctx context.Context, credentialColumn string, eventID uuid.UUID, credential string) (entities.Ticket, error) {
	var ticket entities.Ticket
	err := tr.db.Conn.GetContext(ctx, &ticket, `
		SELECT
			ticket_id,
			event_id,
			qr_payload,
			nfc_tag_id,
			status,
			seat,
			price_amount AS "price.amount",
			price_currency AS "price.currency",
			admitted_at
		FROM
			tickets
		WHERE
			event_id = $1 AND `+credentialColumn+` = $2`,
		eventID, credential,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Ticket{}, entities.ErrTicketNotFound
	}
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not look up ticket by %s: %w", credentialColumn, err)
	}

	return ticket, nil
}

// Admit performs the admissible->admitted transition as a single conditional
// update. There is no separate existence check before the write; under
// concurrent scans of the same ticket exactly one caller sees an affected row.
func (tr TicketRepository) Admit(ctx context.Context, ticketID uuid.UUID) (entities.AdmissionDecision, error) {
	res, err := tr.db.Conn.ExecContext(ctx, `
		UPDATE tickets
		SET status = $2, admitted_at = $3
		WHERE ticket_id = $1 AND status = $4`,
		ticketID, entities.TicketStatusAdmitted, time.Now().UTC(), entities.TicketStatusAdmissible,
	)
	if err != nil {
		return "", fmt.Errorf("could not admit ticket: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 1 {
		return entities.DecisionAdmitted, nil
	}

	// the update matched nothing; the ticket is either gone or already out
	// of the admissible state, both of which are terminal
	var status entities.TicketStatus
	err = tr.db.Conn.GetContext(ctx, &status,
		`SELECT status FROM tickets WHERE ticket_id = $1`, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", entities.ErrTicketNotFound
	}
	if err != nil {
		return "", fmt.Errorf("could not check ticket status: %w", err)
	}

	if status == entities.TicketStatusAdmitted {
		return entities.DecisionAlreadyAdmitted, nil
	}
	return entities.DecisionNotAdmissible, nil
}
