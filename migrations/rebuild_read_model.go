package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions/db"
	"admissions/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

// RebuildOpsEventReadModel replays archived EntryAttemptRecorded_v1 events
// from the data lake into the ops read model. Used after a read model wipe
// or a projection change.
func RebuildOpsEventReadModel(ctx context.Context, dl db.IDataLakeRepository, rm db.OpsEventReadModel) error {
	logger := log.FromContext(ctx)
	logger.Info("Rebuilding ops event read model")

	events, err := dl.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("could not get events from data lake: %w", err)
	}

	logger.WithField("events_count", len(events)).Info("Has events to replay")

	for _, event := range events {
		if event.EventName != "EntryAttemptRecorded_v1" {
			continue
		}

		start := time.Now()

		var recorded entities.EntryAttemptRecorded_v1
		if err := json.Unmarshal(event.EventPayload, &recorded); err != nil {
			return fmt.Errorf("could not unmarshal event %s: %w", event.EventID, err)
		}

		if err := rm.OnEntryAttemptRecorded(ctx, &recorded); err != nil {
			return fmt.Errorf("could not replay event %s: %w", event.EventID, err)
		}

		logger.WithFields(logrus.Fields{
			"event_id": event.EventID,
			"duration": time.Since(start),
		}).Info("Event replayed")
	}

	return nil
}
