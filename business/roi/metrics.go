package roi

import "github.com/prometheus/client_golang/prometheus"

var (
	CalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_calculations_total",
			Help: "Count of ROI calculator runs by result.",
		},
		[]string{"result"},
	)

	CalculationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roi_calculation_duration_seconds",
		Help:    "Time spent computing an ROI projection.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
	})
)

func init() {
	prometheus.MustRegister(CalculationsTotal, CalculationDuration)
}
