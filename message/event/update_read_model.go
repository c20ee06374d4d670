package event

import (
	"context"

	"admissions/entities"
)

func (h Handler) UpdateOpsEventReadModel(ctx context.Context, event *entities.EntryAttemptRecorded_v1) error {
	return h.opsReadModel.OnEntryAttemptRecorded(ctx, event)
}
