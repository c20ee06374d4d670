package http

import (
	"errors"
	"net/http"

	"admissions/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h Handler) PostEvents(c echo.Context) error {
	var eventRequest entities.VenueEvent

	err := c.Bind(&eventRequest)
	if err != nil {
		return err
	}

	if eventRequest.TotalCapacity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "total_capacity must not be negative")
	}

	eventResponse, err := h.eventRepo.CreateEvent(c.Request().Context(), entities.VenueEvent{
		Name:          eventRequest.Name,
		Venue:         eventRequest.Venue,
		StartsAt:      eventRequest.StartsAt,
		TotalCapacity: eventRequest.TotalCapacity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, eventResponse)
}

func (h Handler) PostTickets(c echo.Context) error {
	var ticket entities.Ticket

	err := c.Bind(&ticket)
	if err != nil {
		return err
	}

	if ticket.QrPayload == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "qr_payload is required")
	}
	if ticket.EventID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id is required")
	}

	if ticket.TicketID == uuid.Nil {
		ticket.TicketID = uuid.New()
	}
	if ticket.Status == "" {
		ticket.Status = entities.TicketStatusAdmissible
	}

	err = h.ticketRepo.Create(c.Request().Context(), ticket)
	if errors.Is(err, entities.ErrCredentialTaken) {
		return echo.NewHTTPError(http.StatusConflict, "qr_payload already registered for this event")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"ticket_id": ticket.TicketID.String()})
}
