package intent

import "github.com/prometheus/client_golang/prometheus"

var (
	SessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intent_sessions_started_total",
		Help: "Number of visitor sessions started.",
	})

	SignalsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_signals_recorded_total",
			Help: "Behavior signals recorded by signal type.",
		},
		[]string{"type"},
	)

	Detections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_detections_total",
			Help: "Intent detections by resulting audience.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(SessionsStarted, SignalsRecorded, Detections)
}
