// Package sender собирает фоновый обработчик очереди писем верификации.
package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/user-identity/internal/config"
	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/lib/smtp"
	"github.com/magabrotheeeer/user-identity/internal/metrics"
	senderservice "github.com/magabrotheeeer/user-identity/internal/services/sender"
)

// App — потребитель очереди верификации с SMTP-отправкой.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
	metricsServer *http.Server
}

// New подключается к RabbitMQ и настраивает очереди.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.Bindings())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	app := &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.New(logger, transport, collector),
		logger:        logger,
	}
	if cfg.MetricsAddress != "" {
		app.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           metrics.Handler(prometheus.DefaultGatherer),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return app, nil
}

// Run обрабатывает очередь до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.VerificationQueue, a.logger, a.senderService.SendVerification)
	if err != nil {
		a.logger.Error("failed to start verification queue consumer", sl.Err(err))
		return err
	}

	if a.metricsServer != nil {
		go func() {
			a.logger.Info("metrics server starting on", slog.String("address", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", sl.Err(err))
			}
		}()
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("failed to stop metrics server", sl.Err(err))
		}
	}

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
