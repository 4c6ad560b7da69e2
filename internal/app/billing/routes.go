package billing

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/health"
	notificationlist "github.com/magabrotheeeer/vpn-billing/internal/http/handlers/notification/list"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/payment/confirm"
	paymentlist "github.com/magabrotheeeer/vpn-billing/internal/http/handlers/payment/list"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/payment/start"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/subscription/extend"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/subscription/provision"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/vpn-billing/internal/http/handlers/subscription/trial"
	tarifflist "github.com/magabrotheeeer/vpn-billing/internal/http/handlers/tariff/list"
	"github.com/magabrotheeeer/vpn-billing/internal/http/middlewarectx"
	billingservice "github.com/magabrotheeeer/vpn-billing/internal/services/billing"
	"github.com/magabrotheeeer/vpn-billing/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, billingService *billingservice.Service, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/tariffs", tarifflist.New(logger, billingService).ServeHTTP)
		r.Get("/notifications", notificationlist.New(logger, billingService).ServeHTTP)

		r.Post("/payments/start", start.New(logger, billingService).ServeHTTP)
		r.Post("/payments/{invoice_token}/confirm", confirm.New(logger, billingService).ServeHTTP)
		r.Get("/payments/history/{user_id}", paymentlist.New(logger, billingService).ServeHTTP)

		r.Post("/trial", trial.New(logger, billingService).ServeHTTP)
		r.Get("/subscriptions/{user_id}", read.New(logger, billingService).ServeHTTP)
		r.Post("/subscriptions/{user_id}/extend", extend.New(logger, billingService).ServeHTTP)
		r.Post("/provision", provision.New(logger, billingService).ServeHTTP)

		r.Get("/health", health.New(logger, db).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
