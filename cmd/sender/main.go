// Package main запускает воркер, который доставляет письма подтверждения email
// из очереди RabbitMQ через SMTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/user-identity/internal/app/sender"
	"github.com/magabrotheeeer/user-identity/internal/config"
	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	if cfg.RabbitMQ.URL == "" {
		slog.Error("rabbitmq url is required for the sender")
		os.Exit(1)
	}

	logger := newLogger(cfg.Env).With(slog.String("service", "sender"))
	logger.Info("starting sender",
		slog.String("env", cfg.Env),
		slog.String("queue", rabbitmq.VerificationQueue),
		slog.String("smtp_host", cfg.SMTP.Host),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := sender.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize sender", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("sender stopped with error", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("sender stopped gracefully")
}

func newLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "local" {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
