package event

import (
	"context"

	"admissions/broadcast"
	"admissions/entities"
)

type DataLakeRepository interface {
	Create(ctx context.Context, event entities.DataLakeEvent) error
}

type OpsEventReadModel interface {
	OnEntryAttemptRecorded(ctx context.Context, recorded *entities.EntryAttemptRecorded_v1) error
}

type Handler struct {
	hub          *broadcast.Hub
	dataLake     DataLakeRepository
	opsReadModel OpsEventReadModel
}

func NewHandler(hub *broadcast.Hub, dataLake DataLakeRepository, opsReadModel OpsEventReadModel) Handler {
	if hub == nil {
		panic("missing hub")
	}
	if dataLake == nil {
		panic("missing dataLake")
	}
	if opsReadModel == nil {
		panic("missing opsReadModel")
	}
	return Handler{
		hub:          hub,
		dataLake:     dataLake,
		opsReadModel: opsReadModel,
	}
}
