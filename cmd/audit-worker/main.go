// The audit worker drains the audit event queue into the audit_logs
// table. It is a separate process so the API server never blocks on
// trail persistence and a backlog survives server restarts.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appamqp "github.com/dvgamerr/payme/internal/amqp"
	"github.com/dvgamerr/payme/internal/config"
	"github.com/dvgamerr/payme/internal/store/sqlstore"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
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

	client, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Audit worker started", "queue", cfg.AMQPQueue)

	err = client.ConsumeAudit(ctx, func(msg *appamqp.AuditMessage) error {
		return st.InsertAuditLog(ctx, msg.Entry())
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Audit worker stopped gracefully")
}
