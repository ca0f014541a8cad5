package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ProfileMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learner_profile_mutations_total",
			Help: "Profile mutations by operation and outcome",
		},
		[]string{"operation", "result"},
	)

	OrphanedAvatars = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learner_avatar_orphaned_total",
			Help: "Avatars stored whose learner record update failed",
		},
	)

	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by key scope",
		},
		[]string{"scope"},
	)

	RecommendationsServed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "learner_recommendations_served",
			Help:    "Number of courses returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ProfileMutations)
		prometheus.MustRegister(OrphanedAvatars)
		prometheus.MustRegister(RecommendationsServed)
		prometheus.MustRegister(RateLimited)
	})
}

// ObserveMutation records the outcome of a profile mutation.
func ObserveMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProfileMutations.WithLabelValues(operation, result).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
