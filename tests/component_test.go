package tests

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"admissions/db"
	"admissions/service"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	postgresURL := os.Getenv("POSTGRES_URL")
	redisAddr := os.Getenv("REDIS_ADDR")
	if postgresURL == "" || redisAddr == "" {
		t.Skip("POSTGRES_URL and REDIS_ADDR are required for component tests")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	conn, err := db.NewDBConn(postgresURL)
	require.NoError(t, err)
	defer conn.Close()
	conn.MigrateSchema()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		svc := service.New(rdb, conn, ":8080")
		assert.NoError(t, svc.Run(ctx))
	}()
	waitForHttpServer(t)

	eventID := createEvent(t, CreateEventRequest{
		Name:          "Component Test Gig",
		Venue:         "Hall B",
		StartsAt:      time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339),
		TotalCapacity: 500,
	})

	qrPayload := "QR-" + shortuuid.New()
	createTicket(t, CreateTicketRequest{
		EventID:   eventID,
		QrPayload: qrPayload,
	})

	// first scan is granted and bumps attendance
	granted := scan(t, ScanRequest{
		CredentialValue: qrPayload,
		CredentialKind:  "qr",
		EventID:         eventID,
		GateID:          "gate-1",
	})
	require.Equal(t, "granted", granted.Outcome)
	require.NotNil(t, granted.CurrentAttendance)
	assert.Equal(t, 1, *granted.CurrentAttendance)

	// re-scanning the same credential is denied without touching the counter
	duplicate := scan(t, ScanRequest{
		CredentialValue: qrPayload,
		CredentialKind:  "qr",
		EventID:         eventID,
		GateID:          "gate-2",
	})
	assert.Equal(t, "denied", duplicate.Outcome)
	assert.Equal(t, "duplicate", duplicate.Reason)

	unknown := scan(t, ScanRequest{
		CredentialValue: "QR-" + shortuuid.New(),
		CredentialKind:  "qr",
		EventID:         eventID,
		GateID:          "gate-1",
	})
	assert.Equal(t, "denied", unknown.Outcome)
	assert.Equal(t, "not_found", unknown.Reason)

	var capacity CapacityResponse
	status := getJSON(t, "/events/"+eventID+"/capacity", &capacity)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, capacity.CurrentAttendance)
	assert.Equal(t, 500, capacity.TotalCapacity)

	assertOpsReadModelUpdated(t, eventID)

	status = getJSON(t, "/events/"+uuid.NewString()+"/capacity", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// assertOpsReadModelUpdated waits for the outbox-forwarded attempt events to
// reach the ops read model projection.
func assertOpsReadModelUpdated(t *testing.T, eventID string) {
	t.Helper()

	assert.EventuallyWithT(
		t,
		func(collectT *assert.CollectT) {
			var ops OpsEventResponse
			status := getJSON(t, "/ops/events/"+eventID, &ops)
			if !assert.Equal(collectT, http.StatusOK, status) {
				return
			}

			assert.Equal(collectT, 1, ops.GrantedCount)
			assert.Equal(collectT, 1, ops.OutcomeCounts["denied_duplicate"])
			assert.Equal(collectT, 1, ops.OutcomeCounts["denied_not_found"])
		},
		10*time.Second,
		100*time.Millisecond,
	)
}
