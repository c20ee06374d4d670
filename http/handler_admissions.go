package http

import (
	"fmt"
	"net/http"

	"admissions/admission"
	"admissions/entities"
	"admissions/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type admissionRequest struct {
	CredentialValue string `json:"credential_value"`
	CredentialKind  string `json:"credential_kind"`
	EventID         string `json:"event_id"`
	GateID          string `json:"gate_id"`
}

type admissionResponse struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`

	Ticket            *entities.Ticket `json:"ticket,omitempty"`
	CurrentAttendance *int             `json:"current_attendance,omitempty"`
	TotalCapacity     *int             `json:"total_capacity,omitempty"`
}

func (h Handler) PostAdmissions(c echo.Context) error {
	var request admissionRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	kind := entities.CredentialKind(request.CredentialKind)
	if kind != entities.CredentialKindQR && kind != entities.CredentialKindNFC {
		return echo.NewHTTPError(http.StatusBadRequest, "credential_kind must be \"qr\" or \"nfc\"")
	}
	if request.CredentialValue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "credential_value is required")
	}
	if request.GateID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "gate_id is required")
	}
	eventID, err := uuid.Parse(request.EventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	result, err := h.coordinator.Admit(c.Request().Context(), admission.Request{
		CredentialKind:  kind,
		CredentialValue: request.CredentialValue,
		EventID:         eventID,
		GateID:          request.GateID,
	})
	if err != nil {
		// gates retry against a struggling store; 503 tells them the scan
		// itself was fine
		return echo.NewHTTPError(
			http.StatusServiceUnavailable,
			"admission could not be processed, retry the scan",
		).SetInternal(fmt.Errorf("failed processing admission: %w", err))
	}

	metrics.RecordOutcome(string(result.Outcome))

	response := admissionResponse{}
	switch result.Outcome {
	case entities.OutcomeGranted:
		response.Outcome = "granted"
		response.Ticket = result.Ticket
		if result.Capacity != nil {
			response.CurrentAttendance = &result.Capacity.CurrentAttendance
			response.TotalCapacity = &result.Capacity.TotalCapacity
		}
	case entities.OutcomeDeniedNotFound:
		response.Outcome = "denied"
		response.Reason = "not_found"
	case entities.OutcomeDeniedInvalidState:
		response.Outcome = "denied"
		response.Reason = "invalid_state"
	case entities.OutcomeDeniedDuplicate:
		response.Outcome = "denied"
		response.Reason = "duplicate"
	}

	return c.JSON(http.StatusOK, response)
}
