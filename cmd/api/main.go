package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/WojciechWarchol/java-gmp-rest/internal/api"
	"github.com/WojciechWarchol/java-gmp-rest/internal/api/handler"
	custommiddleware "github.com/WojciechWarchol/java-gmp-rest/internal/api/middleware"
	"github.com/WojciechWarchol/java-gmp-rest/internal/application"
	"github.com/WojciechWarchol/java-gmp-rest/internal/config"
	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
	"github.com/WojciechWarchol/java-gmp-rest/internal/infrastructure/memory"
	"github.com/WojciechWarchol/java-gmp-rest/internal/infrastructure/postgres"
	"github.com/WojciechWarchol/java-gmp-rest/internal/pkg/logger"
	"github.com/WojciechWarchol/java-gmp-rest/internal/pkg/metrics"
	"github.com/WojciechWarchol/java-gmp-rest/internal/worker"
)

func main() {
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(cfg.Env))
	defer logger.Sync()

	// ストア初期化
	eventRepo, cleanup, err := newEventRepository(cfg)
	if err != nil {
		logger.Fatal("ストア初期化エラー", zap.Error(err))
	}
	defer cleanup()

	// メトリクス初期化
	m := metrics.Init()

	// サービスとハンドラー
	eventService := application.NewEventService(eventRepo)
	eventHandler := handler.NewEventHandler(eventService)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	// ルーティング
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	events := e.Group("/api/events")
	events.GET("", eventHandler.List)
	events.GET("/byTitle", eventHandler.ListByTitle)
	events.GET("/:id", eventHandler.GetByID)
	events.POST("", eventHandler.Create)
	events.PUT("/:id", eventHandler.Update)
	events.DELETE("/:id", eventHandler.Delete)

	// イベント統計ワーカー起動
	statsCollector := worker.NewEventStatsCollector(eventService, m, 30*time.Second)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go statsCollector.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port), zap.String("driver", cfg.Database.Driver))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	statsCollector.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}

// newEventRepository は設定に応じたイベントストアを組み立てる
// DB_DRIVER=memoryならPostgreSQLなしで起動できる
func newEventRepository(cfg *config.Config) (event.Repository, func(), error) {
	if cfg.Database.Driver == "memory" {
		logger.Info("インメモリストアを使用します")
		return memory.NewEventRepository(), func() {}, nil
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, err
	}

	return postgres.NewEventRepository(db), func() { db.Close() }, nil
}
