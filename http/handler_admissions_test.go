package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"admissions/admission"
	"admissions/broadcast"
	"admissions/entities"
	"admissions/message/command"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCoordinator struct {
	result   admission.Result
	err      error
	requests []admission.Request
}

func (s *stubCoordinator) Admit(ctx context.Context, req admission.Request) (admission.Result, error) {
	s.requests = append(s.requests, req)
	return s.result, s.err
}

type stubLedger struct {
	capacity entities.EventCapacity
	err      error
}

func (s *stubLedger) Read(ctx context.Context, eventID uuid.UUID) (entities.EventCapacity, error) {
	if s.err != nil {
		return entities.EventCapacity{}, s.err
	}
	return s.capacity, nil
}

type stubTicketRepo struct{}

func (stubTicketRepo) Create(ctx context.Context, ticket entities.Ticket) error { return nil }

type stubEventRepo struct{}

func (stubEventRepo) CreateEvent(ctx context.Context, event entities.VenueEvent) (entities.VenueEventCreateResponse, error) {
	return entities.VenueEventCreateResponse{EventID: uuid.New()}, nil
}

type stubOpsRepo struct{}

func (stubOpsRepo) GetByID(ctx context.Context, eventID uuid.UUID) (entities.OpsEvent, error) {
	return entities.OpsEvent{}, entities.ErrEventNotFound
}

type stubAttemptRepo struct{}

func (stubAttemptRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entities.EntryAttempt, error) {
	return []entities.EntryAttempt{}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(topic string, messages ...*watermillMessage.Message) error { return nil }
func (nopPublisher) Close() error                                                     { return nil }

func newTestRouter(coordinator *stubCoordinator, ledger *stubLedger, hub *broadcast.Hub) *echo.Echo {
	if hub == nil {
		hub = broadcast.NewHub()
	}
	return NewHttpRouter(
		coordinator,
		ledger,
		stubTicketRepo{},
		stubEventRepo{},
		stubOpsRepo{},
		stubAttemptRepo{},
		command.NewCommandBus(nopPublisher{}),
		hub,
	)
}

func postAdmission(t *testing.T, e *echo.Echo, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admissions", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestPostAdmissions_Granted(t *testing.T) {
	eventID := uuid.New()
	ticket := &entities.Ticket{
		TicketID:  uuid.New(),
		EventID:   eventID,
		QrPayload: "QR-1",
		Status:    entities.TicketStatusAdmitted,
	}
	coordinator := &stubCoordinator{
		result: admission.Result{
			Outcome: entities.OutcomeGranted,
			Ticket:  ticket,
			Capacity: &entities.EventCapacity{
				EventID:           eventID,
				CurrentAttendance: 1,
				TotalCapacity:     100,
			},
		},
	}

	e := newTestRouter(coordinator, &stubLedger{}, nil)

	rec := postAdmission(t, e, map[string]any{
		"credential_value": "QR-1",
		"credential_kind":  "qr",
		"event_id":         eventID.String(),
		"gate_id":          "gate-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var response admissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "granted", response.Outcome)
	assert.Empty(t, response.Reason)
	require.NotNil(t, response.CurrentAttendance)
	assert.Equal(t, 1, *response.CurrentAttendance)
	require.NotNil(t, response.TotalCapacity)
	assert.Equal(t, 100, *response.TotalCapacity)
	require.NotNil(t, response.Ticket)
	assert.Equal(t, ticket.TicketID, response.Ticket.TicketID)

	require.Len(t, coordinator.requests, 1)
	assert.Equal(t, entities.CredentialKindQR, coordinator.requests[0].CredentialKind)
	assert.Equal(t, eventID, coordinator.requests[0].EventID)
}

func TestPostAdmissions_DeniedReasons(t *testing.T) {
	for outcome, reason := range map[entities.AttemptOutcome]string{
		entities.OutcomeDeniedNotFound:     "not_found",
		entities.OutcomeDeniedInvalidState: "invalid_state",
		entities.OutcomeDeniedDuplicate:    "duplicate",
	} {
		t.Run(reason, func(t *testing.T) {
			coordinator := &stubCoordinator{result: admission.Result{Outcome: outcome}}
			e := newTestRouter(coordinator, &stubLedger{}, nil)

			rec := postAdmission(t, e, map[string]any{
				"credential_value": "QR-1",
				"credential_kind":  "qr",
				"event_id":         uuid.NewString(),
				"gate_id":          "gate-1",
			})

			require.Equal(t, http.StatusOK, rec.Code)

			var response admissionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "denied", response.Outcome)
			assert.Equal(t, reason, response.Reason)
			assert.Nil(t, response.Ticket)
		})
	}
}

func TestPostAdmissions_MalformedRequest(t *testing.T) {
	cases := map[string]map[string]any{
		"missing credential value": {
			"credential_kind": "qr",
			"event_id":        uuid.NewString(),
			"gate_id":         "gate-1",
		},
		"bad credential kind": {
			"credential_value": "QR-1",
			"credential_kind":  "barcode",
			"event_id":         uuid.NewString(),
			"gate_id":          "gate-1",
		},
		"bad event id": {
			"credential_value": "QR-1",
			"credential_kind":  "qr",
			"event_id":         "not-a-uuid",
			"gate_id":          "gate-1",
		},
		"missing gate id": {
			"credential_value": "QR-1",
			"credential_kind":  "qr",
			"event_id":         uuid.NewString(),
		},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			coordinator := &stubCoordinator{}
			e := newTestRouter(coordinator, &stubLedger{}, nil)

			rec := postAdmission(t, e, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, coordinator.requests, "malformed requests must be rejected before resolution")
		})
	}
}

func TestPostAdmissions_StoreFailure(t *testing.T) {
	coordinator := &stubCoordinator{err: fmt.Errorf("store unavailable")}
	e := newTestRouter(coordinator, &stubLedger{}, nil)

	rec := postAdmission(t, e, map[string]any{
		"credential_value": "QR-1",
		"credential_kind":  "qr",
		"event_id":         uuid.NewString(),
		"gate_id":          "gate-1",
	})

	// the gate retries on 503; a 500 would read as a broken scan
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetCapacity(t *testing.T) {
	eventID := uuid.New()
	ledger := &stubLedger{capacity: entities.EventCapacity{
		EventID:           eventID,
		CurrentAttendance: 42,
		TotalCapacity:     100,
	}}

	e := newTestRouter(&stubCoordinator{}, ledger, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/"+eventID.String()+"/capacity", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response capacityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 42, response.CurrentAttendance)
	assert.Equal(t, 100, response.TotalCapacity)
}

func TestGetCapacity_UnknownEvent(t *testing.T) {
	ledger := &stubLedger{err: entities.ErrEventNotFound}
	e := newTestRouter(&stubCoordinator{}, ledger, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/"+uuid.NewString()+"/capacity", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
