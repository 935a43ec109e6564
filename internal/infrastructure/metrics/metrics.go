package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "savora_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	serviceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_service_requests_total",
			Help: "Outbound calls to the recipe, nutrition and chat services",
		},
		[]string{"path", "outcome"},
	)
	serviceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "savora_service_request_duration_seconds",
			Help:    "Outbound service call duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"path"},
	)
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_recipe_generations_total",
			Help: "Recipe generations by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)
	persistenceWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_persistence_writes_total",
			Help: "History and favorites writes by collection and outcome",
		},
		[]string{"collection", "outcome"},
	)
	staleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savora_stale_responses_total",
			Help: "Service responses dropped because a newer request superseded them",
		},
		[]string{"kind"},
	)
)

// Outcome 依錯誤決定結果標籤
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ServiceCall 記錄外部服務調用
func ServiceCall(path, outcome string, duration time.Duration) {
	serviceRequestsTotal.WithLabelValues(path, outcome).Inc()
	serviceRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// Generation 記錄一次食譜生成
func Generation(trigger, outcome string) {
	generationsTotal.WithLabelValues(trigger, outcome).Inc()
}

// PersistenceWrite 記錄一次收藏或歷史寫入
func PersistenceWrite(collection, outcome string) {
	persistenceWritesTotal.WithLabelValues(collection, outcome).Inc()
}

// StaleResponse 記錄被丟棄的過期回應
func StaleResponse(kind string) {
	staleResponsesTotal.WithLabelValues(kind).Inc()
}

// HTTPMiddleware 收集 HTTP 請求指標
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler Prometheus 抓取端點
func Handler() http.Handler {
	return promhttp.Handler()
}
