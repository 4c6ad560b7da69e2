// Package sender собирает воркера-отправителя: подключение к RabbitMQ,
// клиента Telegram и потребителя очереди напоминаний.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vpn-billing/internal/config"
	"github.com/magabrotheeeer/vpn-billing/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/vpn-billing/internal/services/sender"
	"github.com/magabrotheeeer/vpn-billing/internal/telegram"
)

// App инкапсулирует собранного воркера-отправителя и его ресурсы.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New собирает воркера из конфигурации: подключает RabbitMQ с
// объявлением топологии уведомлений и создает клиента Telegram.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	tgClient, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		conn.Close()
		return nil, err
	}
	senderService := senderservice.NewSenderService(tgClient, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди напоминаний и блокируется до отмены
// контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ReminderQueue, a.senderService.SendReminder)
	if err != nil {
		a.logger.Error("failed to start reminder queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
