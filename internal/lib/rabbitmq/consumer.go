package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
)

// maxInFlight — сколько сообщений обрабатывается одновременно.
const maxInFlight = 10

// ErrUnprocessable помечает сообщение, которое не обработать ни с какой попытки.
// Такое сообщение отклоняется без возврата в очередь.
var ErrUnprocessable = errors.New("unprocessable message")

// requeue решает, вернуть ли сообщение в очередь после ошибки обработчика.
// Повторная попытка даётся один раз и только для временных ошибок.
func requeue(err error, redelivered bool) bool {
	return !redelivered && !errors.Is(err, ErrUnprocessable)
}

// ConsumerMessage запускает потребителя очереди queueName.
//
// Сообщение подтверждается, если handler вернул nil. При ошибке оно один раз
// возвращается в очередь, если ошибка не оборачивает ErrUnprocessable.
// Потребитель останавливается при отмене ctx или закрытии канала.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(delivery.Body); err != nil {
						log.Error("failed to handle message", slog.String("queue", queueName), sl.Err(err))
						if nackErr := delivery.Nack(false, requeue(err, delivery.Redelivered)); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
