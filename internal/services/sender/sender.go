// Package sender отправляет письма с подтверждением email через SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/lib/smtp"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Metrics учитывает результат отправки письма.
type Metrics interface {
	RecordEmailSent(err error)
}

// Service обрабатывает сообщения очереди верификации.
type Service struct {
	transport smtp.Dialer
	log       *slog.Logger
	metrics   Metrics
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtp.Dialer, metrics Metrics) *Service {
	return &Service{
		transport: transport,
		log:       log,
		metrics:   metrics,
	}
}

// SendVerification разбирает сообщение очереди и отправляет письмо со ссылкой подтверждения.
// Сломанное сообщение оборачивает rabbitmq.ErrUnprocessable и не повторяется.
func (s *Service) SendVerification(body []byte) (err error) {
	const op = "sender.SendVerification"
	defer func() { s.metrics.RecordEmailSent(err) }()

	var message models.VerificationMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w: error unmarshalling message: %w", op, rabbitmq.ErrUnprocessable, err)
	}
	if message.Email == "" || message.Token == "" {
		return fmt.Errorf("%s: %w: %w: empty email or token", op, rabbitmq.ErrUnprocessable, models.ErrValidation)
	}

	subject := "Подтверждение email"
	bodyText := fmt.Sprintf("Здравствуйте!\n\nДля подтверждения адреса %s перейдите по ссылке:\n%s\n\nЕсли вы не регистрировались, проигнорируйте это письмо.",
		message.Email, message.Link)

	if err := s.sendEmail([]string{message.Email}, subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Dial()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		s.log.Error("Failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("Failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
