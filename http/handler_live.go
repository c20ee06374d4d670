package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"admissions/broadcast"
	"admissions/entities"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const liveWriteTimeout = 5 * time.Second

// GetLive streams capacityUpdate messages for one event over a websocket.
// The first message is a point-in-time snapshot, so a client connecting
// between admissions still starts from ground truth.
func (h Handler) GetLive(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id must be a valid UUID")
	}

	snapshot, err := h.ledger.Read(c.Request().Context(), eventID)
	if errors.Is(err, entities.ErrEventNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	if err != nil {
		return err
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	sub := h.hub.Subscribe(eventID, 64)
	defer h.hub.Unsubscribe(sub)

	err = writeCapacityUpdate(ctx, conn, broadcast.CapacityUpdate{
		EventID:           snapshot.EventID,
		CurrentAttendance: snapshot.CurrentAttendance,
		TotalCapacity:     snapshot.TotalCapacity,
	})
	if err != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
		return nil
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return nil
		case <-readErr:
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return nil
		case update, ok := <-sub.C:
			if !ok {
				// dropped by the hub for falling behind
				_ = conn.Close(websocket.StatusNormalClosure, "closed")
				return nil
			}
			if err := writeCapacityUpdate(ctx, conn, update); err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return nil
			}
		}
	}
}

func writeCapacityUpdate(ctx context.Context, conn *websocket.Conn, update broadcast.CapacityUpdate) error {
	writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
	defer cancel()

	return wsjson.Write(writeCtx, conn, update)
}
