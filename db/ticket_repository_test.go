package db

import (
	"context"
	"sync"
	"testing"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_FindByQr(t *testing.T) {
	db := getDb(t)
	repo := NewTicketRepo(&db)
	ctx := context.Background()

	eventID := createTestEvent(t, db, 100)
	ticket := createTestTicket(t, db, eventID, entities.TicketStatusAdmissible)

	found, err := repo.FindByQr(ctx, eventID, ticket.QrPayload)
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketID, found.TicketID)
	assert.Equal(t, entities.TicketStatusAdmissible, found.Status)

	// the lookup is scoped to the event
	_, err = repo.FindByQr(ctx, uuid.New(), ticket.QrPayload)
	assert.ErrorIs(t, err, entities.ErrTicketNotFound)

	_, err = repo.FindByQr(ctx, eventID, "XYZ")
	assert.ErrorIs(t, err, entities.ErrTicketNotFound)
}

func TestTicketRepository_FindByNfcTag(t *testing.T) {
	db := getDb(t)
	repo := NewTicketRepo(&db)
	ctx := context.Background()

	eventID := createTestEvent(t, db, 100)

	tag := "TAG-" + uuid.NewString()
	ticket := entities.Ticket{
		TicketID:  uuid.New(),
		EventID:   eventID,
		QrPayload: "QR-" + uuid.NewString(),
		NfcTagID:  &tag,
		Status:    entities.TicketStatusAdmissible,
	}
	require.NoError(t, repo.Create(ctx, ticket))

	found, err := repo.FindByNfcTag(ctx, eventID, tag)
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketID, found.TicketID)
}

func TestTicketRepository_CreateDuplicateQr(t *testing.T) {
	db := getDb(t)
	repo := NewTicketRepo(&db)
	ctx := context.Background()

	eventID := createTestEvent(t, db, 100)
	ticket := createTestTicket(t, db, eventID, entities.TicketStatusAdmissible)

	duplicate := entities.Ticket{
		TicketID:  uuid.New(),
		EventID:   eventID,
		QrPayload: ticket.QrPayload,
		Status:    entities.TicketStatusAdmissible,
	}
	err := repo.Create(ctx, duplicate)
	assert.ErrorIs(t, err, entities.ErrCredentialTaken)
}

func TestTicketRepository_AdmitStates(t *testing.T) {
	db := getDb(t)
	repo := NewTicketRepo(&db)
	ctx := context.Background()

	eventID := createTestEvent(t, db, 100)

	admissible := createTestTicket(t, db, eventID, entities.TicketStatusAdmissible)
	decision, err := repo.Admit(ctx, admissible.TicketID)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionAdmitted, decision)

	decision, err = repo.Admit(ctx, admissible.TicketID)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionAlreadyAdmitted, decision)

	cancelled := createTestTicket(t, db, eventID, entities.TicketStatusCancelled)
	decision, err = repo.Admit(ctx, cancelled.TicketID)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionNotAdmissible, decision)

	refunded := createTestTicket(t, db, eventID, entities.TicketStatusRefunded)
	decision, err = repo.Admit(ctx, refunded.TicketID)
	require.NoError(t, err)
	assert.Equal(t, entities.DecisionNotAdmissible, decision)

	_, err = repo.Admit(ctx, uuid.New())
	assert.ErrorIs(t, err, entities.ErrTicketNotFound)
}

func TestTicketRepository_AdmitExactlyOnce(t *testing.T) {
	db := getDb(t)
	repo := NewTicketRepo(&db)
	ctx := context.Background()

	eventID := createTestEvent(t, db, 100)
	ticket := createTestTicket(t, db, eventID, entities.TicketStatusAdmissible)

	const scans = 50

	decisions := make(chan entities.AdmissionDecision, scans)
	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := repo.Admit(ctx, ticket.TicketID)
			assert.NoError(t, err)
			decisions <- decision
		}()
	}
	wg.Wait()
	close(decisions)

	admitted := 0
	for decision := range decisions {
		if decision == entities.DecisionAdmitted {
			admitted++
		}
	}

	assert.Equal(t, 1, admitted, "exactly one concurrent scan may win")
}
