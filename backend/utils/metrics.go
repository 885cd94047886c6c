package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tracker_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// Writes counts store mutations by kind: entry_created, entry_updated, habit_day.
	Writes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_writes_total",
			Help: "Tracker writes by kind",
		},
		[]string{"kind"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_errors_total",
			Help: "Total unhandled errors",
		},
		[]string{"path"},
	)

	metricsOnce sync.Once
)

// InitMetrics registers the collectors with the default registry once.
func InitMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(ReqCount, ReqDuration, Writes, ErrorCount)
	})
}
