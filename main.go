package main

import (
	"context"
	"os"
	"os/signal"

	"admissions/config"
	"admissions/db"
	"admissions/message"
	"admissions/migrations"
	"admissions/service"
	observability "admissions/trace"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	tp := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("Could not connect to Postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	redisClient := message.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.RebuildOpsReadModel {
		err := migrations.RebuildOpsEventReadModel(
			ctx,
			db.NewDataLakeRepository(&conn),
			db.NewOpsEventReadModel(&conn),
		)
		if err != nil {
			logrus.WithError(err).Fatal("Could not rebuild ops read model")
		}
	}

	logrus.Info("Starting admissions service")

	svc := service.New(redisClient, conn, cfg.HTTPAddr)
	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Service stopped with error")
	}
}
