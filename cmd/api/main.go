package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/faculty-workload/internal/api/http"
	"github.com/spec-kit/faculty-workload/internal/api/http/handlers"
	"github.com/spec-kit/faculty-workload/internal/client"
	"github.com/spec-kit/faculty-workload/internal/config"
	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/events"
	"github.com/spec-kit/faculty-workload/internal/observability"
	"github.com/spec-kit/faculty-workload/internal/persistence"
	"github.com/spec-kit/faculty-workload/internal/service"
	"github.com/spec-kit/faculty-workload/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var seq dashboard.Sequence
	if redis != nil {
		seq = dashboard.WithFallback(redis, func(err error) {
			logger.Warn("redis generation unavailable; using local counter", zap.Error(err))
		})
	}

	metrics := observability.NewMetrics()
	api := client.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(),
		client.WithLogger(logger.Named("workload_api")),
		client.WithMetrics(metrics),
	)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityLogger(service.NewActivityLogger(dispatcher, logger))

	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		API:        api,
		Store:      dashboard.NewStore(seq),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if cfg.App.LoadOnStart {
		worker.LoadOnStart(ctx, dashboardService, logger)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dashboardService, redis),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Pages:     handlers.NewPagesHandler(dashboardService, logger),
	})

	go func() {
		logger.Info("dashboard listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("upstream", cfg.Upstream.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
