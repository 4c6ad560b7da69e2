package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/vpn-billing/internal/lib/invoice"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/provisioner"
	"github.com/magabrotheeeer/vpn-billing/internal/tariffs"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}
func (m *RepoMock) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) ExtendSubscription(ctx context.Context, userID int64, days int) (*models.Subscription, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) CreatePayment(ctx context.Context, payment models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}
func (m *RepoMock) MarkPaymentSucceeded(ctx context.Context, invoiceToken string) error {
	return m.Called(ctx, invoiceToken).Error(0)
}
func (m *RepoMock) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type SchedulerMock struct {
	scheduled []models.Subscription
}

func (m *SchedulerMock) Schedule(sub models.Subscription) {
	m.scheduled = append(m.scheduled, sub)
}

type ProvisionerMock struct{ mock.Mock }

func (m *ProvisionerMock) Provision(ctx context.Context, req provisioner.ProvisionRequest) (*provisioner.ProvisionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provisioner.ProvisionResponse), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(t *testing.T, repo *RepoMock, cache *CacheMock, sched *SchedulerMock, now time.Time) *Service {
	t.Helper()
	rules := models.Rules{TrialDays: 7, GraceDays: 3, GraceSpeedMbps: 10}
	catalog, err := tariffs.New(rules)
	require.NoError(t, err)
	svc := New(repo, cache, catalog, rules, models.DefaultSchedule(), sched, new(ProvisionerMock), newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_StartPayment(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        models.StartPaymentRequest
		setupMocks func(r *RepoMock)
		wantAmount int
		wantErr    error
	}{
		{
			name: "успешный старт оплаты",
			req:  models.StartPaymentRequest{UserID: 7, TariffCode: "light"},
			setupMocks: func(r *RepoMock) {
				r.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
					return p.UserID == 7 && p.TariffCode == "light" &&
						p.Status == models.PaymentStatusPending && p.AmountStars == 110
				})).Return(nil).Once()
			},
			wantAmount: 110,
		},
		{
			name:       "неизвестный тариф",
			req:        models.StartPaymentRequest{UserID: 7, TariffCode: "platinum"},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    tariffs.ErrUnknownTariff,
		},
		{
			name: "сбой истории платежей не срывает оплату",
			req:  models.StartPaymentRequest{UserID: 7, TariffCode: "family"},
			setupMocks: func(r *RepoMock) {
				r.On("CreatePayment", mock.Anything, mock.Anything).
					Return(errors.New("db down")).Once()
			},
			wantAmount: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := newTestService(t, repo, new(CacheMock), &SchedulerMock{}, now)

			status, err := svc.StartPayment(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.PaymentStatusPending, status.Status)
			assert.Equal(t, tt.wantAmount, status.AmountStars)
			assert.Equal(t, invoice.Encode(tt.req.UserID, tt.req.TariffCode, now), status.InvoiceToken)
			assert.Equal(t, "https://t.me/pay?start="+status.InvoiceToken, status.RedirectURL)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ConfirmPayment(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("UpsertSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.UserID == 7 && sub.TariffCode == "light" &&
			sub.ActiveUntil.Equal(now.AddDate(0, 0, 30)) &&
			sub.GraceUntil.Equal(now.AddDate(0, 0, 33))
	})).Return(nil).Once()
	repo.On("MarkPaymentSucceeded", mock.Anything, "invoice-7-light-1700000000").Return(nil).Once()

	cache := new(CacheMock)
	cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil).Once()

	sched := &SchedulerMock{}
	svc := newTestService(t, repo, cache, sched, now)

	sub, err := svc.ConfirmPayment(context.Background(), "invoice-7-light-1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sub.UserID)
	assert.Equal(t, "light", sub.TariffCode)
	require.Len(t, sched.scheduled, 1)
	assert.Equal(t, sub.UserID, sched.scheduled[0].UserID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_ConfirmPayment_Errors(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "испорченный токен", token: "bad", wantErr: invoice.ErrMalformedInvoice},
		{name: "неизвестный тариф", token: "invoice-7-platinum-1700000000", wantErr: tariffs.ErrUnknownTariff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			sched := &SchedulerMock{}
			svc := newTestService(t, repo, new(CacheMock), sched, now)

			_, err := svc.ConfirmPayment(context.Background(), tt.token)
			assert.True(t, errors.Is(err, tt.wantErr))

			// Ошибка на границе не оставляет частичного состояния.
			repo.AssertNotCalled(t, "UpsertSubscription", mock.Anything, mock.Anything)
			assert.Empty(t, sched.scheduled)
		})
	}
}

func TestService_CreateTrial(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("UpsertSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.UserID == 42 && sub.TariffCode == models.TrialTariffCode &&
			sub.ActiveUntil.Equal(now.AddDate(0, 0, 7)) &&
			sub.GraceUntil.Equal(now.AddDate(0, 0, 10))
	})).Return(nil).Once()

	cache := new(CacheMock)
	cache.On("Set", "subscription:42", mock.Anything, time.Hour).Return(nil).Once()

	sched := &SchedulerMock{}
	svc := newTestService(t, repo, cache, sched, now)

	sub, err := svc.CreateTrial(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sub.UserID)
	assert.Len(t, sched.scheduled, 1)
	repo.AssertExpectations(t)
}

func TestService_Extend(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	extended := models.Subscription{
		UserID:      7,
		TariffCode:  "light",
		ActiveUntil: now.AddDate(0, 0, 60),
		GraceUntil:  now.AddDate(0, 0, 63),
	}

	repo := new(RepoMock)
	repo.On("ExtendSubscription", mock.Anything, int64(7), 30).Return(&extended, nil).Once()

	cache := new(CacheMock)
	cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil).Once()

	sched := &SchedulerMock{}
	svc := newTestService(t, repo, cache, sched, now)

	sub, err := svc.Extend(context.Background(), 7, 30)
	require.NoError(t, err)
	assert.Equal(t, extended.ActiveUntil, sub.ActiveUntil)
	require.Len(t, sched.scheduled, 1)
	assert.Equal(t, extended, sched.scheduled[0])
	repo.AssertExpectations(t)
}

func TestService_Provision(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tariffSpeed := 100
	graceSpeed := 10

	tests := []struct {
		name      string
		sub       models.Subscription
		wantSpeed *int
		wantErr   error
	}{
		{
			name: "активная фаза использует тарифную скорость",
			sub: models.Subscription{
				UserID:         7,
				TariffCode:     "light",
				ActiveUntil:    now.AddDate(0, 0, 10),
				GraceUntil:     now.AddDate(0, 0, 13),
				SpeedLimitMbps: &tariffSpeed,
				GraceSpeedMbps: &graceSpeed,
			},
			wantSpeed: &tariffSpeed,
		},
		{
			name: "льготная фаза использует урезанную скорость",
			sub: models.Subscription{
				UserID:         7,
				TariffCode:     "light",
				ActiveUntil:    now.AddDate(0, 0, -1),
				GraceUntil:     now.AddDate(0, 0, 2),
				SpeedLimitMbps: &tariffSpeed,
				GraceSpeedMbps: &graceSpeed,
			},
			wantSpeed: &graceSpeed,
		},
		{
			name: "истекшая подписка не получает профиль",
			sub: models.Subscription{
				UserID:      7,
				TariffCode:  "light",
				ActiveUntil: now.AddDate(0, 0, -10),
				GraceUntil:  now.AddDate(0, 0, -7),
			},
			wantErr: ErrSubscriptionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetSubscription", mock.Anything, int64(7)).Return(&tt.sub, nil).Once()

			cache := new(CacheMock)
			cache.On("Get", "subscription:7", mock.Anything).Return(false, nil)
			cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil)

			prov := new(ProvisionerMock)
			if tt.wantErr == nil {
				prov.On("Provision", mock.Anything, mock.MatchedBy(func(req provisioner.ProvisionRequest) bool {
					if req.UserID != 7 || req.Protocol != "wireguard" || req.TariffCode != "light" {
						return false
					}
					return req.SpeedLimitMbps != nil && *req.SpeedLimitMbps == *tt.wantSpeed
				})).Return(&provisioner.ProvisionResponse{Protocol: "wireguard", Config: "cfg"}, nil).Once()
			}

			svc := newTestService(t, repo, cache, &SchedulerMock{}, now)
			svc.prov = prov

			resp, err := svc.Provision(context.Background(), 7, "wireguard", "phone")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				prov.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "wireguard", resp.Protocol)
			prov.AssertExpectations(t)
		})
	}
}

func TestService_Provision_CollaboratorErrors(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sub := models.Subscription{
		UserID:      7,
		TariffCode:  "light",
		ActiveUntil: now.AddDate(0, 0, 10),
		GraceUntil:  now.AddDate(0, 0, 13),
	}

	for _, wantErr := range []error{provisioner.ErrCapacityExceeded, provisioner.ErrTrafficCapExceeded} {
		repo := new(RepoMock)
		repo.On("GetSubscription", mock.Anything, int64(7)).Return(&sub, nil).Once()

		cache := new(CacheMock)
		cache.On("Get", "subscription:7", mock.Anything).Return(false, nil)
		cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil)

		prov := new(ProvisionerMock)
		prov.On("Provision", mock.Anything, mock.Anything).Return(nil, wantErr).Once()

		svc := newTestService(t, repo, cache, &SchedulerMock{}, now)
		svc.prov = prov

		_, err := svc.Provision(context.Background(), 7, "wireguard", "phone")
		assert.True(t, errors.Is(err, wantErr))
	}
}

func TestService_Subscription_CacheThrough(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	stored := models.Subscription{
		UserID:      7,
		TariffCode:  "light",
		ActiveUntil: now.AddDate(0, 0, 30),
		GraceUntil:  now.AddDate(0, 0, 33),
	}

	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, int64(7)).Return(&stored, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", "subscription:7", mock.Anything).Return(false, nil).Once()
	cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil).Once()

	svc := newTestService(t, repo, cache, &SchedulerMock{}, now)

	sub, err := svc.Subscription(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, stored, *sub)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
