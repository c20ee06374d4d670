package message

import (
	"admissions/message/command"
	"admissions/message/event"
	"admissions/message/outbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

func NewWatermillRouter(
	pgSubscriber message.Subscriber,
	publisher message.Publisher,
	eventProcessorConfig cqrs.EventProcessorConfig,
	commandProcessorConfig cqrs.CommandProcessorConfig,
	eventHandler event.Handler,
	commandHandler command.Handler,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	_, err = outbox.NewForwarder(pgSubscriber, publisher, watermillLogger, router)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	commandProcessor, err := cqrs.NewCommandProcessorWithConfig(router, commandProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = commandProcessor.AddHandlers(
		cqrs.NewCommandHandler(
			"RecountAttendance",
			commandHandler.RecountAttendance,
		),
	)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"BroadcastCapacityUpdate",
			eventHandler.BroadcastCapacityUpdate,
		),
		cqrs.NewEventHandler(
			"UpdateOpsEventReadModel",
			eventHandler.UpdateOpsEventReadModel,
		),
		cqrs.NewEventHandler(
			"ArchiveCapacityUpdated",
			eventHandler.ArchiveCapacityUpdated,
		),
		cqrs.NewEventHandler(
			"ArchiveEntryAttemptRecorded",
			eventHandler.ArchiveEntryAttemptRecorded,
		),
	)
	if err != nil {
		panic(err)
	}

	return router
}
