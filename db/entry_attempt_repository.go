package db

import (
	"context"
	"database/sql"
	"fmt"

	"admissions/entities"
	"admissions/message/event"
	"admissions/message/outbox"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IEntryAttemptRepository interface {
	Append(ctx context.Context, attempt entities.EntryAttempt) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entities.EntryAttempt, error)
	CountGranted(ctx context.Context, eventID uuid.UUID) (int, error)
}

type EntryAttemptRepository struct {
	db *DB
}

func NewEntryAttemptRepository(db *DB) EntryAttemptRepository {
	if db == nil {
		panic("db is nil")
	}
	return EntryAttemptRepository{
		db: db,
	}
}

// Append writes the attempt and publishes EntryAttemptRecorded_v1 through the
// outbox in one transaction. The insert is idempotent per attempt id, so a
// retried append cannot double-record a decision.
func (ar EntryAttemptRepository) Append(ctx context.Context, attempt entities.EntryAttempt) error {
	return updateInTx(ctx, ar.db.Conn, sql.LevelReadCommitted, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO
				entry_attempts (attempt_id, event_id, ticket_id, credential_kind, gate_id, outcome, occurred_at)
			VALUES
				(:attempt_id, :event_id, :ticket_id, :credential_kind, :gate_id, :outcome, :occurred_at)
			ON CONFLICT (attempt_id) DO NOTHING`,
			attempt,
		)
		if err != nil {
			return fmt.Errorf("could not append entry attempt: %w", err)
		}

		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not read affected rows: %w", err)
		}
		if inserted == 0 {
			// retried append, already recorded and already published
			return nil
		}

		outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
		if err != nil {
			return fmt.Errorf("could not create outbox publisher: %w", err)
		}

		err = event.NewBus(outboxPublisher).Publish(ctx, entities.EntryAttemptRecorded_v1{
			Header:         entities.NewEventHeaderWithIdempotencyKey(attempt.AttemptID.String()),
			AttemptID:      attempt.AttemptID,
			EventID:        attempt.EventID,
			TicketID:       attempt.TicketID,
			CredentialKind: attempt.CredentialKind,
			GateID:         attempt.GateID,
			Outcome:        attempt.Outcome,
			OccurredAt:     attempt.OccurredAt,
		})
		if err != nil {
			return fmt.Errorf("could not publish EntryAttemptRecorded_v1: %w", err)
		}

		return nil
	})
}

func (ar EntryAttemptRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entities.EntryAttempt, error) {
	attempts := []entities.EntryAttempt{}
	err := ar.db.Conn.SelectContext(ctx, &attempts, `
		SELECT attempt_id, event_id, ticket_id, credential_kind, gate_id, outcome, occurred_at
		FROM entry_attempts
		WHERE event_id = $1
		ORDER BY occurred_at`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list entry attempts: %w", err)
	}

	return attempts, nil
}

func (ar EntryAttemptRepository) CountGranted(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := ar.db.Conn.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM entry_attempts
		WHERE event_id = $1 AND outcome = $2`,
		eventID, entities.OutcomeGranted,
	)
	if err != nil {
		return 0, fmt.Errorf("could not count granted attempts: %w", err)
	}

	return count, nil
}
