package health

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"savora-web/internal/infrastructure/config"
	"savora-web/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 2 * time.Second

// Pinger 可做就緒檢查的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsReporter 可回報統計資訊的依賴，例如 session 儲存
type StatsReporter interface {
	Stats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                            `json:"status"`
	Timestamp time.Time                         `json:"timestamp"`
	Version   string                            `json:"version"`
	Runtime   map[string]interface{}            `json:"runtime"`
	Stores    map[string]map[string]interface{} `json:"stores,omitempty"`
}

// ReadinessResponse 就緒檢查響應
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg    *config.Config
	checks map[string]Pinger
}

// NewHandler 創建健康檢查處理器，checks 為就緒檢查依賴
func NewHandler(cfg *config.Config, checks map[string]Pinger) *Handler {
	return &Handler{cfg: cfg, checks: checks}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 附上各儲存的統計
	for name, check := range h.checks {
		reporter, ok := check.(StatsReporter)
		if !ok {
			continue
		}
		if response.Stores == nil {
			response.Stores = make(map[string]map[string]interface{})
		}
		response.Stores[name] = reporter.Stats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 逐一檢查依賴，任一失敗回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	status := http.StatusOK

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := h.checks[name].Ping(ctx)
		cancel()

		if err != nil {
			common.LogWarn("就緒檢查失敗", zap.String("dependency", name), zap.Error(err))
			resp.Checks[name] = err.Error()
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	c.JSON(status, resp)
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
