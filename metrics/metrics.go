package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_outcomes_total",
			Help: "Admission decisions by outcome.",
		},
		[]string{"outcome"},
	)

	attendance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admissions_current_attendance",
			Help: "Last broadcast attendance per event.",
		},
		[]string{"event_id"},
	)
)

func RecordOutcome(outcome string) {
	admissionOutcomes.WithLabelValues(outcome).Inc()
}

func SetAttendance(eventID string, current int) {
	attendance.WithLabelValues(eventID).Set(float64(current))
}
