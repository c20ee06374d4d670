package http

import (
	"errors"
	"fmt"
	"net/http"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type capacityResponse struct {
	CurrentAttendance int `json:"current_attendance"`
	TotalCapacity     int `json:"total_capacity"`
}

func (h Handler) GetCapacity(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	capacity, err := h.ledger.Read(c.Request().Context(), eventID)
	if errors.Is(err, entities.ErrEventNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	if err != nil {
		return fmt.Errorf("failed reading capacity: %w", err)
	}

	return c.JSON(http.StatusOK, capacityResponse{
		CurrentAttendance: capacity.CurrentAttendance,
		TotalCapacity:     capacity.TotalCapacity,
	})
}
