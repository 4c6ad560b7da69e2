package rabbitmq

// Топология уведомлений: один direct-обменник, очередь на каждого воркера.
const (
	NotificationsExchange = "notifications"
	ReminderQueue         = "notifications.reminder"
	ReminderRoutingKey    = "reminder"
)

// QueueConfig описывает очередь и ее ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые нужно объявить при старте.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ReminderQueue, RoutingKey: ReminderRoutingKey},
	}
}
