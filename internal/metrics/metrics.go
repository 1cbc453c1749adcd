// Package metrics собирает метрики Prometheus для сервиса учётных записей.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты попытки входа.
const (
	LoginSuccess     = "success"
	LoginBadPassword = "bad_credentials"
	LoginUnverified  = "unverified"
)

// Collector хранит счётчики сервиса и регистрирует их в переданном реестре.
type Collector struct {
	registrations        prometheus.Counter
	logins               *prometheus.CounterVec
	verifications        prometheus.Counter
	avatarUploads        prometheus.Counter
	notificationFailures prometheus.Counter
	emailsSent           *prometheus.CounterVec
}

// NewCollector создаёт Collector и регистрирует метрики в reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_registrations_total",
			Help: "Количество успешных регистраций",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_logins_total",
			Help: "Количество попыток входа по результату",
		}, []string{"result"}),
		verifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_verifications_total",
			Help: "Количество подтверждённых email",
		}),
		avatarUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_avatar_uploads_total",
			Help: "Количество загруженных аватаров",
		}),
		notificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "identity_notification_failures_total",
			Help: "Количество неотправленных уведомлений о верификации",
		}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_emails_sent_total",
			Help: "Количество писем, обработанных отправителем",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.verifications,
		c.avatarUploads,
		c.notificationFailures,
		c.emailsSent,
	)
	return c
}

// RecordRegistration учитывает успешную регистрацию.
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin учитывает попытку входа с указанным результатом.
func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

// RecordVerification учитывает подтверждение email.
func (c *Collector) RecordVerification() {
	c.verifications.Inc()
}

// RecordAvatarUpload учитывает загрузку аватара.
func (c *Collector) RecordAvatarUpload() {
	c.avatarUploads.Inc()
}

// RecordNotificationFailure учитывает сбой публикации уведомления.
func (c *Collector) RecordNotificationFailure() {
	c.notificationFailures.Inc()
}

// RecordEmailSent учитывает результат отправки письма.
func (c *Collector) RecordEmailSent(err error) {
	if err != nil {
		c.emailsSent.WithLabelValues("error").Inc()
		return
	}
	c.emailsSent.WithLabelValues("ok").Inc()
}

// Handler возвращает обработчик /metrics для указанного сборщика.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
