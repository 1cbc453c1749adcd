// Package notifier отправляет уведомления о верификации email в очередь сообщений.
//
// Отправка не блокирует вызывающего: публикация выполняется в отдельной горутине,
// а её ошибки только логируются и учитываются в метриках.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// publishTimeout ограничивает время одной публикации.
const publishTimeout = 10 * time.Second

// Publisher публикует сообщение с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Metrics учитывает неудачные публикации.
type Metrics interface {
	RecordNotificationFailure()
}

// Notifier ставит письма с токеном верификации в очередь.
type Notifier struct {
	publisher Publisher
	log       *slog.Logger
	metrics   Metrics
	publicURL string
	wg        sync.WaitGroup
}

// New создаёт Notifier. publicURL используется для построения ссылки подтверждения.
func New(publisher Publisher, log *slog.Logger, metrics Metrics, publicURL string) *Notifier {
	return &Notifier{
		publisher: publisher,
		log:       log,
		metrics:   metrics,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Notify асинхронно публикует сообщение с токеном верификации для email.
// Отмена ctx вызывающего не прерывает публикацию.
func (n *Notifier) Notify(ctx context.Context, email, token string) {
	msg := models.VerificationMessage{
		Email: email,
		Token: token,
		Link:  n.Link(token),
	}
	detached := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		pubCtx, cancel := context.WithTimeout(detached, publishTimeout)
		defer cancel()

		if err := n.publish(pubCtx, msg); err != nil {
			n.metrics.RecordNotificationFailure()
			n.log.Error("failed to publish verification message",
				slog.String("email", email),
				sl.Err(err),
			)
			return
		}
		n.log.Debug("verification message published", slog.String("email", email))
	}()
}

// Link возвращает ссылку подтверждения для токена.
func (n *Notifier) Link(token string) string {
	return n.publicURL + "/users/verify/" + token
}

// Wait ожидает завершения всех начатых публикаций. Используется при остановке сервиса.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) publish(ctx context.Context, msg models.VerificationMessage) error {
	const op = "notifier.publish"
	done := make(chan error, 1)
	go func() {
		done <- n.publisher.Publish(rabbitmq.VerificationRoutingKey, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}
