package notifier

import (
	"log/slog"
)

// LogPublisher пишет сообщения в лог вместо брокера. Используется при локальном запуске без RabbitMQ.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher создаёт LogPublisher.
func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish логирует сообщение с ключом маршрутизации.
func (p *LogPublisher) Publish(routingKey string, message any) error {
	p.log.Info("message published", slog.String("routing_key", routingKey), slog.Any("message", message))
	return nil
}
