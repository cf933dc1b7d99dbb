package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_http_requests_total",
			Help: "Total number of HTTP requests by route, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	habitTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_log_toggles_total",
			Help: "Habit log toggles by resulting state",
		},
		[]string{"result"},
	)

	statsComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "habits_stats_compute_duration_seconds",
			Help:    "Time spent computing streaks and completion for one habit",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	activeHabitsPerUser = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "habits_active_habits_per_user",
			Help: "Number of active habits per user",
		},
		[]string{"user_id"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Label by route pattern so habit ids don't explode cardinality.
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}
		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(endpoint, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(endpoint, r.Method, statusCode).Observe(duration)
	})
}

func recordToggle(completed bool) {
	result := "cleared"
	if completed {
		result = "completed"
	}
	habitTogglesTotal.WithLabelValues(result).Inc()
}

func UpdateActiveHabitsForUser(userID string, count int) {
	activeHabitsPerUser.WithLabelValues(userID).Set(float64(count))
}
