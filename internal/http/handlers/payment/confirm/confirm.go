// Package confirm реализует HTTP-обработчик подтверждения оплаты.
//
// Handler извлекает токен инвойса из URL, подтверждает оплату через
// бизнес-логику и возвращает созданную подписку. Все намерение платежа
// закодировано в токене, тело запроса не требуется.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/invoice"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/tariffs"
)

// Handler обрабатывает запросы на подтверждение оплаты.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подтверждения оплаты
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	ConfirmPayment(ctx context.Context, token string) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату
// @Description Подтверждает оплату по токену инвойса и создает подписку.
// @Tags Payments
// @Produce json
// @Param invoice_token path string true "Токен инвойса"
// @Success 200 {object} response.Response "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Испорченный токен инвойса"
// @Failure 404 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/{invoice_token}/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, "invoice_token")

	sub, err := h.service.ConfirmPayment(r.Context(), token)
	if errors.Is(err, invoice.ErrMalformedInvoice) {
		log.Error("malformed invoice token", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("malformed invoice token"))
		return
	}
	if errors.Is(err, tariffs.ErrUnknownTariff) {
		log.Error("unknown tariff in invoice token", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown tariff"))
		return
	}
	if err != nil {
		log.Error("failed to confirm payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not confirm payment"))
		return
	}

	log.Info("success to confirm payment", slog.Int64("user_id", sub.UserID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}
