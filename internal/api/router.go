package api

import (
	"fmt"
	"time"

	"savora-web/internal/api/handlers/health"
	"savora-web/internal/api/handlers/home"
	"savora-web/internal/api/middleware"
	"savora-web/internal/core/page"
	"savora-web/internal/infrastructure/config"
	"savora-web/internal/infrastructure/metrics"
	"savora-web/internal/pkg/common"
	"savora-web/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultTimeout     = 75 * time.Second
	defaultMaxBodySize = 1 << 20
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Orchestrator *page.Orchestrator
	Checks       map[string]health.Pinger
	Dedup        *middleware.Deduplicator
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if deps.Orchestrator == nil {
		return nil, fmt.Errorf("failed to setup router: orchestrator is nil")
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		common.LogError("Failed to parse templates", zap.Error(err))
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())
	router.Use(metrics.HTTPMiddleware())

	origins := cfg.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}
	router.Use(middleware.BodySizeLimit(maxBody))

	// 健康檢查與指標不需要 session
	healthHandler := health.NewHandler(cfg, deps.Checks)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	app := router.Group("/")
	if cfg.RateLimit.Enabled {
		app.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	app.Use(middleware.Timeout(timeout))
	app.Use(middleware.Session(cfg.Session))
	app.Use(middleware.Identity(middleware.NewTokenVerifier(cfg.Auth.JWTSecret), cfg.Auth.CookieName))

	dedup := deps.Dedup
	if dedup == nil {
		dedup = middleware.NewDeduplicator(cfg.DedupWindow)
	}

	homeHandler := home.NewHandler(deps.Orchestrator, cfg.App.Debug)
	homeHandler.Register(app)
	app.POST("/favorites", dedup.Middleware(), homeHandler.SaveFavorite)

	v1 := app.Group("/api/v1")
	{
		v1.GET("/page", homeHandler.PageState)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", maxBody),
		zap.Int("readiness_checks", len(deps.Checks)),
	)

	return router, nil
}
