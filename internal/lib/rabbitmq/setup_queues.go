package rabbitmq

// Exchange direct exchange для уведомлений.
const Exchange = "notifications"

const (
	// VerificationQueue очередь писем подтверждения email.
	VerificationQueue = "notification.verification"
	// VerificationRoutingKey ключ маршрутизации для VerificationQueue.
	VerificationRoutingKey = "verification"
)

// Binding связывает долговечную очередь с Exchange по ключу маршрутизации.
type Binding struct {
	QueueName  string
	RoutingKey string
}

// Bindings возвращает очереди, которые объявляют и издатель, и потребитель.
// Объявление идемпотентно, поэтому порядок запуска сервисов не важен.
func Bindings() []Binding {
	return []Binding{
		{QueueName: VerificationQueue, RoutingKey: VerificationRoutingKey},
	}
}
