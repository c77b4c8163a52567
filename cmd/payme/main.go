package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	appamqp "github.com/dvgamerr/payme/internal/amqp"
	"github.com/dvgamerr/payme/internal/audit"
	"github.com/dvgamerr/payme/internal/auth"
	"github.com/dvgamerr/payme/internal/budget"
	"github.com/dvgamerr/payme/internal/config"
	"github.com/dvgamerr/payme/internal/httpapi"
	"github.com/dvgamerr/payme/internal/store/sqlstore"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var dialect sqlstore.Dialect
	var dsn string
	switch cfg.DBBackend {
	case "postgres":
		dialect, dsn = sqlstore.Postgres(), cfg.PostgresDSN
	default:
		dialect, dsn = sqlstore.SQLite(), cfg.SQLiteDBPath
	}

	st, err := sqlstore.Open(dialect, dsn)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "backend", cfg.DBBackend)
		os.Exit(1)
	}
	defer st.Close()

	var publisher audit.Publisher
	if cfg.AMQPURL != "" {
		client, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("Audit publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	authSvc := auth.NewService(st, cfg.SessionTTL)
	budgetSvc := budget.NewService(st)
	auditor := audit.NewRecorder(st, publisher)

	handler := httpapi.NewHandler(authSvc, budgetSvc, st, auditor)
	router := httpapi.NewRouter(handler, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	sweeper := auth.NewSweeper(st, cfg.SweepInterval)
	sweeper.Start()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting payme server", "port", cfg.Port, "backend", cfg.DBBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		sweeper.Stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
