package content

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_selections_total",
			Help: "Count of content variant selections by audience and mode.",
		},
		[]string{"audience", "mode"},
	)

	ImpressionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_impressions_total",
			Help: "Count of content impressions by audience and variant.",
		},
		[]string{"audience", "variant"},
	)

	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_conversions_total",
			Help: "Count of content conversions by audience and variant.",
		},
		[]string{"audience", "variant"},
	)
)

func init() {
	prometheus.MustRegister(SelectionsTotal, ImpressionsTotal, ConversionsTotal)
}
