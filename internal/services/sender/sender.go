// Package sender реализует воркера-отправителя: читает напоминания из
// очереди уведомлений и доставляет их пользователям в Telegram.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Messenger доставляет текстовое сообщение в чат пользователя.
type Messenger interface {
	Send(chatID int64, text string) error
}

// SenderService обрабатывает сообщения очереди напоминаний.
type SenderService struct {
	messenger Messenger
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(messenger Messenger, log *slog.Logger) *SenderService {
	return &SenderService{
		messenger: messenger,
		log:       log,
	}
}

// SendReminder разбирает напоминание из очереди и отправляет его пользователю.
// Ошибка доставки возвращается вызывающему: потребитель вернет сообщение
// в очередь для повторной попытки.
func (s *SenderService) SendReminder(body []byte) error {
	const op = "sender.SendReminder"

	var message models.ReminderMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if message.UserID <= 0 || message.Message == "" {
		return fmt.Errorf("%s: invalid reminder payload", op)
	}

	if err := s.messenger.Send(message.UserID, message.Message); err != nil {
		s.log.Error("failed to deliver reminder",
			slog.Int64("user_id", message.UserID),
			slog.String("phase", string(message.Phase)),
			sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reminder delivered",
		slog.Int64("user_id", message.UserID),
		slog.String("phase", string(message.Phase)),
		slog.Int("trigger_hours", message.TriggerHoursBeforeEnd))
	return nil
}
