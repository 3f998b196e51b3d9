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

	AssessmentCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "career_assessments_total",
			Help: "Total number of completed career assessments",
		},
	)

	// outcome: success, fallback
	AIGenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_match_ai_calls_total",
			Help: "Text generation calls made while matching, by outcome",
		},
		[]string{"outcome"},
	)

	AIGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_match_ai_call_duration_seconds",
			Help:    "Duration of text generation calls made while matching",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)

	AuditWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_assessment_audit_failures_total",
			Help: "Assessment audit writes that failed, by sink",
		},
		[]string{"sink"},
	)

	LearningPathCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_paths_generated_total",
			Help: "Total number of generated learning paths",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AssessmentCounter,
			AIGenerationCounter,
			AIGenerationDuration,
			AuditWriteFailures,
			LearningPathCounter,
		)
	})
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
