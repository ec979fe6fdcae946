package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records metadata for drop analysis runs.
type EngineMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	orders   prometheus.Histogram
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "engine_analysis_duration_seconds",
		Help:    "Duration of drop analysis runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_analysis_success",
		Help: "Successful drop analysis runs.",
	}, []string{"stage"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_analysis_failure",
		Help: "Failed drop analysis runs.",
	}, []string{"stage"})
	orders := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_analysis_order_count",
		Help:    "Number of orders fed into each analysis run.",
		Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
	})
	reg.MustRegister(duration, success, failure, orders)
	return &EngineMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		orders:   orders,
	}
}

// ObserveDuration records the duration for the named analysis stage.
func (m *EngineMetrics) ObserveDuration(stage string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncSuccess increments the success counter for the named stage.
func (m *EngineMetrics) IncSuccess(stage string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(stage).Inc()
}

// IncFailure increments the failure counter for the named stage.
func (m *EngineMetrics) IncFailure(stage string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(stage).Inc()
}

// ObserveOrderCount records how many orders one analysis run consumed.
func (m *EngineMetrics) ObserveOrderCount(n int) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Observe(float64(n))
}
