package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the raffle's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raffle",
			Subsystem: "participants",
			Name:      "registrations_total",
			Help:      "Participant registrations by outcome.",
		},
		[]string{"outcome"},
	)

	slotOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raffle",
			Subsystem: "board",
			Name:      "operations_total",
			Help:      "Slot reservations and releases by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	draws = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raffle",
			Subsystem: "draw",
			Name:      "draws_total",
			Help:      "Completed draws by mode and result.",
		},
		[]string{"mode", "result"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "raffle",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Raffle sessions currently held in memory.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raffle",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "raffle",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		registrations,
		slotOperations,
		draws,
		activeSessions,
		httpRequests,
		httpDuration,
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func outcome(err error) string {
	if err != nil {
		return "rejected"
	}
	return "ok"
}

// RecordRegistration counts a registration attempt.
func RecordRegistration(err error) {
	registrations.WithLabelValues(outcome(err)).Inc()
}

// RecordSlotOperation counts a reserve or release attempt.
func RecordSlotOperation(operation string, err error) {
	slotOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// RecordDraw counts a completed draw. mode is "manual" or "random".
func RecordDraw(mode string, void bool) {
	result := "winner"
	if void {
		result = "void"
	}
	draws.WithLabelValues(mode, result).Inc()
}

// SetActiveSessions publishes the number of live sessions.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
