package event

import (
	"context"
	"encoding/json"
	"fmt"

	"admissions/entities"
)

func (h Handler) ArchiveCapacityUpdated(ctx context.Context, event *entities.CapacityUpdated_v1) error {
	return h.archive(ctx, event.Header, "CapacityUpdated_v1", event)
}

func (h Handler) ArchiveEntryAttemptRecorded(ctx context.Context, event *entities.EntryAttemptRecorded_v1) error {
	return h.archive(ctx, event.Header, "EntryAttemptRecorded_v1", event)
}

func (h Handler) archive(ctx context.Context, header entities.EventHeader, eventName string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal %s for the data lake: %w", eventName, err)
	}

	return h.dataLake.Create(ctx, entities.DataLakeEvent{
		EventID:      header.ID,
		PublishedAt:  header.PublishedAt,
		EventName:    eventName,
		EventPayload: payload,
	})
}
