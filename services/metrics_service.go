package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "installer_request_total",
			Help: "Total status API requests",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "installer_request_duration_seconds",
			Help:    "Duration of status API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	processUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clawdeye_process_up",
			Help: "Whether a supervised process is running (1) or not (0)",
		},
		[]string{"process"},
	)

	processExits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clawdeye_process_exits_total",
			Help: "Observed exits of supervised processes",
		},
		[]string{"process"},
	)

	totalRequests int64
	totalErrors   int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(processUp)
	prometheus.MustRegister(processExits)
}

func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

func IncrementErrorCount(route string) {
	atomic.AddInt64(&totalErrors, 1)
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

// SetProcessUp records supervised process liveness for /metrics.
func SetProcessUp(process string, up bool) {
	val := 0.0
	if up {
		val = 1.0
	}
	processUp.WithLabelValues(process).Set(val)
}

func IncrementProcessExit(process string) {
	processExits.WithLabelValues(process).Inc()
}
