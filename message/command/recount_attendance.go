package command

import (
	"context"
	"fmt"

	"admissions/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h *Handler) RecountAttendance(ctx context.Context, cmd *entities.RecountAttendance) error {
	capacity, err := h.ledger.Recount(ctx, cmd.EventID)
	if err != nil {
		return fmt.Errorf("could not recount attendance for event %s: %w", cmd.EventID, err)
	}

	log.FromContext(ctx).
		WithField("event_id", cmd.EventID).
		WithField("current_attendance", capacity.CurrentAttendance).
		Info("Attendance recounted from audit trail")

	return nil
}
