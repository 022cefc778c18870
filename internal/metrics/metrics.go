package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Signup/login outcomes
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Signup and login attempts by outcome",
		},
		[]string{"event", "outcome"},
	)

	// Requests turned away by the auth gate
	AuthRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Protected requests rejected by the auth gate",
		},
		[]string{"reason"}, // no_token|malformed|signature_invalid|expired|user_not_found
	)

	PasswordHashSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "password_hash_seconds",
			Help:    "Time spent in bcrypt",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2},
		},
		[]string{"op"}, // hash|verify
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// handler for the /metrics endpoint
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestLatency)
		prometheus.MustRegister(AuthEvents)
		prometheus.MustRegister(AuthRejections)
		prometheus.MustRegister(PasswordHashSeconds)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}
