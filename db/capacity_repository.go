package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"admissions/entities"

	"github.com/google/uuid"
)

type ICapacityRepository interface {
	CreateEvent(ctx context.Context, event entities.VenueEvent) (entities.VenueEventCreateResponse, error)
	Increment(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
	Read(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
	Recount(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error)
}

type CapacityRepository struct {
	db *DB
}

func NewCapacityRepository(db *DB) CapacityRepository {
	if db == nil {
		panic("db is nil")
	}
	return CapacityRepository{
		db: db,
	}
}

func (cr CapacityRepository) CreateEvent(ctx context.Context, event entities.VenueEvent) (entities.VenueEventCreateResponse, error) {
	var eventID uuid.UUID

	err := cr.db.Conn.QueryRowContext(
		ctx,
		`
		INSERT INTO venue_events (name, venue, starts_at, total_capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING event_id`,
		event.Name, event.Venue, event.StartsAt, event.TotalCapacity,
	).Scan(&eventID)

	if err != nil {
		return entities.VenueEventCreateResponse{}, fmt.Errorf("could not save event: %w", err)
	}

	return entities.VenueEventCreateResponse{EventID: eventID}, nil
}

// Increment bumps the attendance counter by one and returns the fresh value.
// The single-statement update serializes concurrent increments on the row, so
// returned counts are gapless and never repeat. Capacity is not enforced:
// attendance may exceed total_capacity, the counter is informational.
func (cr CapacityRepository) Increment(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error) {
	var capacity entities.EventCapacity
	err := cr.db.Conn.GetContext(ctx, &capacity, `
		UPDATE venue_events
		SET current_attendance = current_attendance + 1
		WHERE event_id = $1
		RETURNING event_id, current_attendance, total_capacity`,
		eventID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.EventCapacity{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.EventCapacity{}, fmt.Errorf("could not increment attendance: %w", err)
	}

	return capacity, nil
}

func (cr CapacityRepository) Read(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error) {
	var capacity entities.EventCapacity
	err := cr.db.Conn.GetContext(ctx, &capacity, `
		SELECT event_id, current_attendance, total_capacity
		FROM venue_events
		WHERE event_id = $1`,
		eventID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.EventCapacity{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.EventCapacity{}, fmt.Errorf("could not read capacity: %w", err)
	}

	return capacity, nil
}

// Recount rebuilds the derived counter from the audit trail, the source of
// truth for attendance.
func (cr CapacityRepository) Recount(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error) {
	var capacity entities.EventCapacity
	err := cr.db.Conn.GetContext(ctx, &capacity, `
		UPDATE venue_events
		SET current_attendance = (
			SELECT COUNT(*) FROM entry_attempts
			WHERE event_id = $1 AND outcome = $2
		)
		WHERE event_id = $1
		RETURNING event_id, current_attendance, total_capacity`,
		eventID, entities.OutcomeGranted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.EventCapacity{}, entities.ErrEventNotFound
	}
	if err != nil {
		return entities.EventCapacity{}, fmt.Errorf("could not recount attendance: %w", err)
	}

	return capacity, nil
}
