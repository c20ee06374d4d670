package http

import (
	"errors"
	"fmt"
	"net/http"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h Handler) GetOpsEvent(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	resp, err := h.opsRepo.GetByID(c.Request().Context(), eventID)
	if errors.Is(err, entities.ErrEventNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no activity recorded for event")
	}
	if err != nil {
		return fmt.Errorf("failed getting ops event: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h Handler) GetOpsEventAttempts(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	attempts, err := h.attemptRepo.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return fmt.Errorf("failed listing entry attempts: %w", err)
	}

	return c.JSON(http.StatusOK, attempts)
}

func (h Handler) PostRecount(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	cmd := entities.RecountAttendance{
		Header:  entities.NewEventHeaderWithIdempotencyKey(eventID.String()),
		EventID: eventID,
	}

	if err := h.cmdBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("failed to send recount command: %w", err)
	}
	return c.NoContent(http.StatusAccepted)
}
