package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

type CreateEventRequest struct {
	Name          string `json:"name"`
	Venue         string `json:"venue"`
	StartsAt      string `json:"starts_at"`
	TotalCapacity int    `json:"total_capacity"`
}

type CreateEventResponse struct {
	EventID string `json:"event_id"`
}

type CreateTicketRequest struct {
	EventID   string `json:"event_id"`
	QrPayload string `json:"qr_payload"`
	NfcTagID  string `json:"nfc_tag_id,omitempty"`
	Seat      string `json:"seat,omitempty"`
}

type ScanRequest struct {
	CredentialValue string `json:"credential_value"`
	CredentialKind  string `json:"credential_kind"`
	EventID         string `json:"event_id"`
	GateID          string `json:"gate_id"`
}

type ScanResponse struct {
	Outcome           string `json:"outcome"`
	Reason            string `json:"reason"`
	CurrentAttendance *int   `json:"current_attendance"`
	TotalCapacity     *int   `json:"total_capacity"`
}

type CapacityResponse struct {
	CurrentAttendance int `json:"current_attendance"`
	TotalCapacity     int `json:"total_capacity"`
}

type OpsEventResponse struct {
	GrantedCount  int            `json:"granted_count"`
	OutcomeCounts map[string]int `json:"outcome_counts"`
	LastGateID    string         `json:"last_gate_id"`
}

func postJSON(t *testing.T, path string, request any, response any) int {
	t.Helper()

	payload, err := json.Marshal(request)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewBuffer(payload))
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	if response != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(response))
	}

	return resp.StatusCode
}

func getJSON(t *testing.T, path string, response any) int {
	t.Helper()

	resp, err := http.Get(baseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if response != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(response))
	}

	return resp.StatusCode
}

func createEvent(t *testing.T, req CreateEventRequest) string {
	t.Helper()

	var response CreateEventResponse
	status := postJSON(t, "/events", req, &response)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, response.EventID)

	return response.EventID
}

func createTicket(t *testing.T, req CreateTicketRequest) {
	t.Helper()

	status := postJSON(t, "/tickets", req, nil)
	require.Equal(t, http.StatusCreated, status)
}

func scan(t *testing.T, req ScanRequest) ScanResponse {
	t.Helper()

	var response ScanResponse
	status := postJSON(t, "/admissions", req, &response)
	require.Equal(t, http.StatusOK, status)

	return response
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get(baseURL + "/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode)
		},
		time.Second*10,
		time.Millisecond*50,
	)
}
