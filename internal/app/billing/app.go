// Package billing собирает сервис биллинга: хранилище, кеш, брокер,
// движок напоминаний, каталог тарифов и HTTP-сервер.
package billing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vpn-billing/internal/cache"
	"github.com/magabrotheeeer/vpn-billing/internal/config"
	"github.com/magabrotheeeer/vpn-billing/internal/migrations"
	"github.com/magabrotheeeer/vpn-billing/internal/provisioner"
	"github.com/magabrotheeeer/vpn-billing/internal/rabbitmq"
	billingservice "github.com/magabrotheeeer/vpn-billing/internal/services/billing"
	"github.com/magabrotheeeer/vpn-billing/internal/services/reminder"
	"github.com/magabrotheeeer/vpn-billing/internal/storage/repository"
	"github.com/magabrotheeeer/vpn-billing/internal/tariffs"
)

// App инкапсулирует собранный сервис биллинга и его ресурсы.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	conn      *amqp.Connection
	ch        *amqp.Channel
	scheduler *reminder.Scheduler
}

// New собирает приложение из конфигурации: подключает PostgreSQL, Redis и
// RabbitMQ, прогоняет миграции, строит каталог тарифов, движок напоминаний
// и HTTP-сервер с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	catalog, err := tariffs.New(cfg.Billing)
	if err != nil {
		return nil, err
	}

	notifier := rabbitmq.NewNotifier(ch)
	scheduler := reminder.New(cfg.Notifications, notifier, logger)

	providerClient := provisioner.NewClient(cfg.ProvisionerURL)

	billingService := billingservice.New(db, cacheRedis, catalog,
		cfg.Billing, cfg.Notifications, scheduler, providerClient, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, billingService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		conn:      conn,
		ch:        ch,
		scheduler: scheduler,
	}, nil
}

// Run запускает HTTP-сервер и движок напоминаний, блокируясь до отмены
// контекста или фатальной ошибки сервера. При завершении сервер
// останавливается корректно, таймеры напоминаний гасятся.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.scheduler.Stop()
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
