package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every HTTP handler, labelled by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// Latency of the detect + select path behind the content endpoint
	ContentServeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_serve_latency_seconds",
		Help:    "Latency of intent detection plus variant selection",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		ContentServeLatency,
	)
}
