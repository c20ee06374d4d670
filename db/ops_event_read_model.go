package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// OpsEventReadModel keeps a per-event JSONB summary of gate activity,
// projected from EntryAttemptRecorded_v1.
type OpsEventReadModel struct {
	conn *DB
}

func NewOpsEventReadModel(db *DB) OpsEventReadModel {
	return OpsEventReadModel{
		conn: db,
	}
}

func (r OpsEventReadModel) OnEntryAttemptRecorded(ctx context.Context, recorded *entities.EntryAttemptRecorded_v1) error {
	return updateInTx(
		ctx,
		r.conn.Conn,
		sql.LevelRepeatableRead,
		func(ctx context.Context, tx *sqlx.Tx) error {
			rm, err := r.findModelByEventID(ctx, recorded.EventID, tx)
			if errors.Is(err, sql.ErrNoRows) {
				rm = entities.OpsEvent{
					EventID:       recorded.EventID,
					OutcomeCounts: map[string]int{},
				}
			} else if err != nil {
				return fmt.Errorf("could not find read model: %w", err)
			}

			if rm.OutcomeCounts == nil {
				rm.OutcomeCounts = map[string]int{}
			}
			rm.OutcomeCounts[string(recorded.Outcome)]++
			if recorded.Outcome == entities.OutcomeGranted {
				rm.GrantedCount++
			}
			if recorded.OccurredAt.After(rm.LastScanAt) {
				rm.LastScanAt = recorded.OccurredAt
				rm.LastGateID = recorded.GateID
			}

			return r.updateModel(ctx, tx, rm)
		},
	)
}

func (r OpsEventReadModel) GetByID(ctx context.Context, eventID uuid.UUID) (entities.OpsEvent, error) {
	var payload []byte

	err := r.conn.Conn.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_ops_events WHERE event_id = $1",
		eventID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.OpsEvent{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.OpsEvent{}, fmt.Errorf("could not get read model: %w", err)
	}

	return unmarshalOpsEvent(payload)
}

func (r OpsEventReadModel) findModelByEventID(ctx context.Context, eventID uuid.UUID, tx *sqlx.Tx) (entities.OpsEvent, error) {
	var payload []byte

	err := tx.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_ops_events WHERE event_id = $1",
		eventID,
	).Scan(&payload)
	if err != nil {
		return entities.OpsEvent{}, err
	}

	return unmarshalOpsEvent(payload)
}

func (r OpsEventReadModel) updateModel(ctx context.Context, tx *sqlx.Tx, readModel entities.OpsEvent) error {
	readModel.LastUpdate = time.Now()

	payload, err := json.Marshal(readModel)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO
			read_model_ops_events (payload, event_id)
		VALUES
			($1, $2)
		ON CONFLICT (event_id) DO UPDATE SET payload = excluded.payload;
		`, payload, readModel.EventID)
	if err != nil {
		return fmt.Errorf("could not update read model: %w", err)
	}

	return nil
}

func unmarshalOpsEvent(payload []byte) (entities.OpsEvent, error) {
	var rm entities.OpsEvent
	if err := json.Unmarshal(payload, &rm); err != nil {
		return entities.OpsEvent{}, fmt.Errorf("could not unmarshal read model: %w", err)
	}

	return rm, nil
}
