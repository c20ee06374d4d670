package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testDb *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) DB {
	t.Helper()

	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}

	getDbOnce.Do(func() {
		var err error
		testDb, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}

		db := DB{Conn: testDb}
		db.MigrateSchema()
	})
	return DB{Conn: testDb}
}

func createTestEvent(t *testing.T, db DB, capacity int) uuid.UUID {
	t.Helper()

	repo := NewCapacityRepository(&db)
	resp, err := repo.CreateEvent(context.Background(), entities.VenueEvent{
		Name:          "test event",
		Venue:         "test venue",
		StartsAt:      time.Now().Add(time.Hour),
		TotalCapacity: capacity,
	})
	require.NoError(t, err)

	return resp.EventID
}

func createTestTicket(t *testing.T, db DB, eventID uuid.UUID, status entities.TicketStatus) entities.Ticket {
	t.Helper()

	ticket := entities.Ticket{
		TicketID:  uuid.New(),
		EventID:   eventID,
		QrPayload: "QR-" + uuid.NewString(),
		Status:    status,
	}

	repo := NewTicketRepo(&db)
	require.NoError(t, repo.Create(context.Background(), ticket))

	return ticket
}
