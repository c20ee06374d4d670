package message

import (
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

// Projection handlers (ops read model, data lake) are idempotent, so
// redelivery after exhausted retries is safe; the retry window only needs to
// ride out short Postgres hiccups.
const (
	handlerMaxRetries    = 8
	handlerRetryInterval = 250 * time.Millisecond
	handlerRetryCap      = 5 * time.Second
)

func useMiddlewares(router *message.Router, watermillLogger watermill.LoggerAdapter) {
	router.AddMiddleware(middleware.Recoverer)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      handlerMaxRetries,
		InitialInterval: handlerRetryInterval,
		MaxInterval:     handlerRetryCap,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	router.AddMiddleware(correlationMiddleware)
	router.AddMiddleware(loggingMiddleware)
}

// correlationMiddleware carries the scan request's correlation id into the
// handler context, minting one for messages that arrived without it.
func correlationMiddleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := msg.Metadata.Get("correlation_id")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := msg.Context()
		ctx = log.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))
		ctx = log.ContextWithCorrelationID(ctx, correlationID)
		msg.SetContext(ctx)

		return h(msg)
	}
}

func loggingMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := log.FromContext(msg.Context()).WithFields(logrus.Fields{
			"message_id": msg.UUID,
			"payload":    string(msg.Payload),
			"metadata":   msg.Metadata,
		})

		logger.Info("Handling message")

		msgs, err := next(msg)
		if err != nil {
			logger.WithError(err).Error("Message handling failed")
		}

		return msgs, err
	}
}
