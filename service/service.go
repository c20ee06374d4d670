package service

import (
	"context"
	"net/http"

	"admissions/admission"
	"admissions/broadcast"
	"admissions/db"
	admissionsHttp "admissions/http"
	"admissions/message"
	"admissions/message/command"
	"admissions/message/event"
	"admissions/message/outbox"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string
}

func New(
	redisClient *redis.Client,
	conn db.DB,
	httpAddr string,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	eventBus := event.NewBus(redisPublisher)
	commandBus := command.NewCommandBus(redisPublisher)

	ticketRepo := db.NewTicketRepo(&conn)
	capacityRepo := db.NewCapacityRepository(&conn)
	attemptRepo := db.NewEntryAttemptRepository(&conn)
	opsReadModel := db.NewOpsEventReadModel(&conn)
	dataLakeRepo := db.NewDataLakeRepository(&conn)

	hub := broadcast.NewHub()

	coordinator := admission.NewCoordinator(
		ticketRepo,
		ticketRepo,
		capacityRepo,
		attemptRepo,
		event.NewCapacityPublisher(eventBus),
	)

	eventsHandler := event.NewHandler(hub, dataLakeRepo, opsReadModel)
	commandsHandler := command.NewHandler(capacityRepo)

	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)
	commandProcessorConfig := command.NewCommandProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		eventProcessorConfig,
		commandProcessorConfig,
		eventsHandler,
		commandsHandler,
		watermillLogger,
	)

	echoRouter := admissionsHttp.NewHttpRouter(
		coordinator,
		capacityRepo,
		ticketRepo,
		capacityRepo,
		opsReadModel,
		attemptRepo,
		commandBus,
		hub,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        httpAddr,
	}
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the HTTP server should not report healthy before the router runs
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
