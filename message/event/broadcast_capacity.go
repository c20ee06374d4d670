package event

import (
	"context"

	"admissions/broadcast"
	"admissions/entities"
	"admissions/metrics"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

func (h Handler) BroadcastCapacityUpdate(ctx context.Context, event *entities.CapacityUpdated_v1) error {
	log.FromContext(ctx).
		WithField("event_id", event.EventID).
		WithField("current_attendance", event.CurrentAttendance).
		Info("Broadcasting capacity update")

	metrics.SetAttendance(event.EventID.String(), event.CurrentAttendance)

	h.hub.Publish(broadcast.CapacityUpdate{
		EventID:           event.EventID,
		CurrentAttendance: event.CurrentAttendance,
		TotalCapacity:     event.TotalCapacity,
	})

	return nil
}
