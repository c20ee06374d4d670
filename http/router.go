package http

import (
	"net/http"

	"admissions/broadcast"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	coordinator AdmissionCoordinator,
	ledger CapacityReader,
	ticketRepo TicketRepository,
	eventRepo EventRepository,
	opsRepo OpsEventRepository,
	attemptRepo EntryAttemptRepository,
	cmdBus *cqrs.CommandBus,
	hub *broadcast.Hub,
) *echo.Echo {
	e := libHttp.NewEcho()

	e.Use(otelecho.Middleware("admissions"))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		coordinator: coordinator,
		ledger:      ledger,
		ticketRepo:  ticketRepo,
		eventRepo:   eventRepo,
		opsRepo:     opsRepo,
		attemptRepo: attemptRepo,
		cmdBus:      cmdBus,
		hub:         hub,
	}

	e.POST("/admissions", handler.PostAdmissions)
	e.GET("/events/:event_id/capacity", handler.GetCapacity)
	e.GET("/events/:event_id/live", handler.GetLive)
	e.POST("/events", handler.PostEvents)
	e.POST("/tickets", handler.PostTickets)
	e.GET("/ops/events/:event_id", handler.GetOpsEvent)
	e.GET("/ops/events/:event_id/attempts", handler.GetOpsEventAttempts)
	e.POST("/ops/events/:event_id/recount", handler.PostRecount)

	return e
}
