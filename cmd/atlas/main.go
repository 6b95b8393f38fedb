package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-hrm/atlas-reports/internal/analytics"
	"github.com/atlas-hrm/atlas-reports/internal/app"
	"github.com/atlas-hrm/atlas-reports/internal/observability"
	"github.com/atlas-hrm/atlas-reports/internal/platform/cache"
	"github.com/atlas-hrm/atlas-reports/internal/platform/db"
	"github.com/atlas-hrm/atlas-reports/internal/report"
	"github.com/atlas-hrm/atlas-reports/internal/report/delivery"
	"github.com/atlas-hrm/atlas-reports/internal/report/export"
	"github.com/atlas-hrm/atlas-reports/internal/report/history"
	reporthttp "github.com/atlas-hrm/atlas-reports/internal/report/http"
	"github.com/atlas-hrm/atlas-reports/internal/report/render"
	"github.com/atlas-hrm/atlas-reports/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var pool *pgxpool.Pool
	if cfg.PGDSN != "" {
		pool, err = db.New(ctx, cfg.PGDSN, cfg.DBMaxConns)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, analytics cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	renderClient, err := export.NewClient(cfg.GotenbergURL)
	if err != nil {
		logger.Error("init pdf render client", slog.Any("error", err))
		os.Exit(1)
	}
	if err := renderClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	var recorder report.Recorder
	var historyRepo *history.Repository
	if pool != nil {
		historyRepo = history.NewRepository(pool, report.DefaultAdminName)
		recorder = historyRepo
	}

	service, err := report.NewService(report.ServiceConfig{
		Renderer:     renderClient,
		Compose:      render.Compose,
		ReportsDir:   cfg.ReportsDir,
		Viewer:       delivery.NewFileViewer(),
		Sharer:       delivery.NewDirectorySharer(cfg.ShareDir),
		Notifier:     delivery.NewQueueNotifier(jobsClient, report.DefaultAdminName),
		Recorder:     recorder,
		Logger:       logger,
		OpenCooldown: cfg.OpenCooldown,
	})
	if err != nil {
		logger.Error("init report service", slog.Any("error", err))
		os.Exit(1)
	}

	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsClient, err := analytics.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamToken, analyticsCache)
	if err != nil {
		logger.Error("init analytics client", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	var lister reporthttp.HistoryLister
	if historyRepo != nil {
		lister = historyRepo
	}
	reportHandler := reporthttp.NewHandler(logger, service, analyticsClient, lister, metrics)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ReportHandler: reportHandler,
		JobHandler:    jobHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
