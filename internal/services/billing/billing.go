// Package billing содержит бизнес-логику жизненного цикла подписок:
// старт и подтверждение оплаты, пробный период, продление и выдачу
// данных для напоминаний.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/vpn-billing/internal/lib/invoice"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/provisioner"
	"github.com/magabrotheeeer/vpn-billing/internal/tariffs"
)

// ErrSubscriptionExpired возвращается при попытке получить профиль
// подключения по истекшей подписке.
var ErrSubscriptionExpired = errors.New("subscription expired")

// SubscriptionRepository определяет методы хранилища подписок и платежей.
type SubscriptionRepository interface {
	// UpsertSubscription сохраняет подписку пользователя, заменяя прежнюю.
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
	// GetSubscription возвращает текущую подписку пользователя.
	GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
	// ExtendSubscription атомарно продлевает подписку на days дней.
	ExtendSubscription(ctx context.Context, userID int64, days int) (*models.Subscription, error)
	// CreatePayment добавляет запись истории платежей.
	CreatePayment(ctx context.Context, payment models.Payment) error
	// MarkPaymentSucceeded помечает платеж по токену инвойса успешным.
	MarkPaymentSucceeded(ctx context.Context, invoiceToken string) error
	// ListPayments возвращает историю платежей пользователя.
	ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error)
}

// Cache описывает методы кеширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ReminderScheduler регистрирует напоминания для подписки.
type ReminderScheduler interface {
	Schedule(sub models.Subscription)
}

// Provisioner выдает профили подключения к VPN-узлам.
type Provisioner interface {
	Provision(ctx context.Context, req provisioner.ProvisionRequest) (*provisioner.ProvisionResponse, error)
}

// Service реализует операции биллинга поверх каталога тарифов, хранилища,
// кеша и движка напоминаний.
type Service struct {
	repo      SubscriptionRepository
	cache     Cache
	catalog   *tariffs.Catalog
	rules     models.Rules
	schedule  []models.ScheduleEntry
	scheduler ReminderScheduler
	prov      Provisioner
	log       *slog.Logger
	now       func() time.Time
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, cache Cache, catalog *tariffs.Catalog,
	rules models.Rules, schedule []models.ScheduleEntry,
	scheduler ReminderScheduler, prov Provisioner, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		catalog:   catalog,
		rules:     rules,
		schedule:  schedule,
		scheduler: scheduler,
		prov:      prov,
		log:       log,
		now:       time.Now,
	}
}

// Tariffs возвращает список тарифов каталога.
func (s *Service) Tariffs() []models.Tariff {
	return s.catalog.All()
}

// Schedule возвращает расписание напоминаний.
func (s *Service) Schedule() []models.ScheduleEntry {
	return s.schedule
}

// StartPayment начинает оплату тарифа: проверяет код тарифа, выпускает
// токен инвойса и возвращает данные для перехода к оплате. Сервер не
// хранит инвойс, все намерение платежа закодировано в токене.
func (s *Service) StartPayment(ctx context.Context, req models.StartPaymentRequest) (*models.PaymentStatus, error) {
	tariff, err := s.catalog.Lookup(req.TariffCode)
	if err != nil {
		return nil, err
	}

	token := invoice.Encode(req.UserID, tariff.Code, s.now())

	payment := models.Payment{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		TariffCode:   tariff.Code,
		AmountStars:  tariff.PriceStars,
		Status:       models.PaymentStatusPending,
		InvoiceToken: token,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		// История платежей вспомогательна, оплату из-за нее не срываем.
		s.log.Warn("failed to record pending payment", sl.Err(err))
	}

	return &models.PaymentStatus{
		Status:       models.PaymentStatusPending,
		AmountStars:  tariff.PriceStars,
		InvoiceToken: token,
		RedirectURL:  "https://t.me/pay?start=" + token,
	}, nil
}

// ConfirmPayment подтверждает оплату по токену инвойса и создает подписку,
// заменяя прежнюю запись пользователя. Подтверждение безусловно после
// успешного разбора токена и резолва тарифа: сверка с платежным
// провайдером в этот сервис не входит. Ошибка регистрации напоминаний не
// откатывает подтвержденную оплату.
func (s *Service) ConfirmPayment(ctx context.Context, token string) (*models.Subscription, error) {
	userID, tariffCode, _, err := invoice.Decode(token)
	if err != nil {
		return nil, err
	}
	tariff, err := s.catalog.Lookup(tariffCode)
	if err != nil {
		return nil, err
	}

	sub := models.NewSubscription(userID, tariff, s.now(), s.rules)
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	s.log.Info("payment confirmed",
		slog.Int64("user_id", userID), slog.String("tariff", tariffCode))

	if err := s.repo.MarkPaymentSucceeded(ctx, token); err != nil {
		s.log.Warn("failed to mark payment succeeded", sl.Err(err))
	}

	s.cacheSubscription(sub)
	s.scheduler.Schedule(sub)
	return &sub, nil
}

// CreateTrial создает пробную подписку пользователя, заменяя прежнюю запись.
func (s *Service) CreateTrial(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub := models.NewTrialSubscription(userID, s.now(), s.rules)
	if err := s.repo.UpsertSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save trial subscription: %w", err)
	}
	s.log.Info("trial subscription created", slog.Int64("user_id", userID))

	s.cacheSubscription(sub)
	s.scheduler.Schedule(sub)
	return &sub, nil
}

// Extend продлевает подписку пользователя на days дней и перепланирует
// напоминания. Продление выполняется атомарно на стороне хранилища.
func (s *Service) Extend(ctx context.Context, userID int64, days int) (*models.Subscription, error) {
	sub, err := s.repo.ExtendSubscription(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	s.log.Info("subscription extended",
		slog.Int64("user_id", userID), slog.Int("days", days))

	s.cacheSubscription(*sub)
	s.scheduler.Schedule(*sub)
	return sub, nil
}

// Subscription возвращает текущую подписку пользователя, используя кеш.
func (s *Service) Subscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	var cached *models.Subscription
	key := cacheKey(userID)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheSubscription(*sub)
	return sub, nil
}

// Provision выдает профиль подключения для текущей подписки пользователя.
// Действующее ограничение скорости зависит от фазы: тарифное в активной,
// урезанное в льготной. По истекшей подписке профиль не выдается.
// Ошибки емкости и лимита трафика коллаборатора пробрасываются без
// повторных попыток.
func (s *Service) Provision(ctx context.Context, userID int64, protocol, deviceName string) (*provisioner.ProvisionResponse, error) {
	sub, err := s.Subscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if sub.PhaseAt(now) == models.PhaseExpired {
		return nil, ErrSubscriptionExpired
	}
	tariff, err := s.catalog.Lookup(sub.TariffCode)
	if err != nil {
		return nil, err
	}

	resp, err := s.prov.Provision(ctx, provisioner.ProvisionRequest{
		UserID:          userID,
		Protocol:        protocol,
		DeviceName:      deviceName,
		TariffCode:      sub.TariffCode,
		SpeedLimitMbps:  sub.EffectiveSpeedCapAt(now),
		SimultaneousUse: tariff.Devices,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("connection profile issued",
		slog.Int64("user_id", userID),
		slog.String("protocol", protocol),
		slog.String("phase", string(sub.PhaseAt(now))))
	return resp, nil
}

// Payments возвращает историю платежей пользователя.
func (s *Service) Payments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userID)
}

func (s *Service) cacheSubscription(sub models.Subscription) {
	key := cacheKey(sub.UserID)
	if err := s.cache.Set(key, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
	}
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("subscription:%d", userID)
}
