package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Notifier публикует напоминания в обменник уведомлений.
// Реализует интерфейс потребителя движка напоминаний.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// Notify публикует напоминание с ключом маршрутизации воркера-отправителя.
func (n *Notifier) Notify(msg models.ReminderMessage) error {
	const op = "rabbitmq.Notifier.Notify"
	if err := PublishMessage(n.ch, NotificationsExchange, ReminderRoutingKey, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
