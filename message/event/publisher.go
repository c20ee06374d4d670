package event

import (
	"context"
	"fmt"

	"admissions/entities"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
)

// CapacityPublisher pushes capacity updates onto the event bus; the
// broadcast handler fans them out to live watchers. Delivery is best-effort,
// a watcher that misses one sees the next or falls back to the capacity read.
type CapacityPublisher struct {
	eventBus *cqrs.EventBus
}

func NewCapacityPublisher(eventBus *cqrs.EventBus) CapacityPublisher {
	if eventBus == nil {
		panic("missing eventBus")
	}
	return CapacityPublisher{eventBus: eventBus}
}

func (p CapacityPublisher) Publish(ctx context.Context, capacity entities.EventCapacity) error {
	err := p.eventBus.Publish(ctx, entities.CapacityUpdated_v1{
		Header:            entities.NewEventHeader(),
		EventID:           capacity.EventID,
		CurrentAttendance: capacity.CurrentAttendance,
		TotalCapacity:     capacity.TotalCapacity,
	})
	if err != nil {
		return fmt.Errorf("failed to publish CapacityUpdated_v1 event: %w", err)
	}

	return nil
}
