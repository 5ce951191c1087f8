package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adpilot/internal/adapter/gateway"
	"adpilot/internal/adapter/http"
	"adpilot/internal/adapter/memory"
	"adpilot/internal/adapter/postgres"
	"adpilot/internal/adapter/usecase"
	"adpilot/internal/config"
	"adpilot/internal/core/port"
	"adpilot/internal/db"
	"adpilot/internal/metrics"
	"adpilot/internal/scheduler"
)

// main is the entry point of the campaign controller. It loads
// configuration, opens the campaign registry, starts the controller loops
// and the operator HTTP server. On receiving a termination signal it stops
// the loops and gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler).With(slog.String("env", cfg.Env))
		slog.SetDefault(logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var repo port.CampaignRepository
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore(nil, nil)
		if cfg.Psql.Seed {
			campaigns, records := db.DemoData(time.Now().UTC())
			for _, c := range campaigns {
				store.PutCampaign(c)
			}
			for _, r := range records {
				store.PutInventory(r)
			}
			logger.Info("memory registry seeded", slog.Int("campaigns", len(campaigns)))
		}
		logger.Warn("using memory registry, bookkeeping is lost on restart")
		repo = store
	default:
		// Optionally run migrations if configured. We use the Psql sub‑config.
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
				return
			}
			logger.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			logger.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()

		if cfg.Psql.Seed {
			if err = db.Seed(ctx, pool); err != nil {
				logger.Error("seed error", slog.Any("error", err))
				return
			}
			logger.Info("demo data seeded")
		}
		repo = postgres.NewCampaignRepository(pool)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	client := gateway.NewClient(cfg.Gateway, nil, logger.With(slog.String("component", "gateway")))
	ctrl := usecase.NewController(repo, client, port.SystemClock{}, cfg.Controller,
		logger.With(slog.String("component", "controller")))

	cc := cfg.Controller
	loops := scheduler.New(logger.With(slog.String("component", "scheduler")),
		scheduler.Job{Name: usecase.LoopClicks, Interval: cc.ClickInterval, Run: ctrl.EvaluateClicks},
		scheduler.Job{Name: usecase.LoopSpendGuard, Interval: cc.SpendInterval, Run: ctrl.GuardSpend},
		scheduler.Job{Name: usecase.LoopIncrements, Interval: cc.IncrementInterval, Run: ctrl.DrainIncrements},
		scheduler.Job{Name: usecase.LoopSpendRefresh, Interval: cc.SpendRefreshInterval, Run: ctrl.RefreshSpend},
	)
	loops.Start(ctx)

	handler := httpadapter.NewHandler(ctrl, promhttp.Handler(), logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		exitCode = 0
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
	}

	loops.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
