package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"savora-web/internal/api"
	"savora-web/internal/api/handlers/health"
	"savora-web/internal/api/middleware"
	"savora-web/internal/core/page"
	"savora-web/internal/core/persistence"
	"savora-web/internal/core/service"
	"savora-web/internal/core/session"
	"savora-web/internal/infrastructure/config"
	"savora-web/internal/infrastructure/database"
	"savora-web/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("services_base_url", cfg.Services.BaseURL),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("mongo_configured", cfg.Mongo.URI != ""),
		zap.Bool("identity_enabled", cfg.Auth.JWTSecret != ""),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	kv, err := newSessionStore(startCtx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer kv.Close()

	checks := map[string]health.Pinger{"session": kv}

	var docs persistence.Store = persistence.Disabled{}
	if cfg.Mongo.URI != "" {
		store, err := database.Connect(startCtx, cfg.Mongo)
		if err != nil {
			common.LogFatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(ctx); err != nil {
				common.LogWarn("關閉 MongoDB 連線失敗", zap.Error(err))
			}
		}()
		docs = store
		checks["mongo"] = store
	} else {
		common.LogWarn("未設定 MongoDB，歷史紀錄與收藏將無法寫入")
	}

	client := service.NewClient(cfg)
	orch := page.NewOrchestrator(page.NewStateStore(kv), client, client, client, docs)

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Stop()

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Orchestrator: orch,
		Checks:       checks,
		Dedup:        dedup,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}

// newSessionStore 依設定選擇頁面狀態儲存
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Store {
	case "redis":
		store, err := session.NewRedisStore(ctx, cfg.Redis, cfg.Session)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return session.NewMemoryStore(cfg.Session), nil
	}
}
