// Package start реализует HTTP-обработчик начала оплаты тарифа.
//
// Handler принимает JSON-запрос с идентификатором пользователя и кодом
// тарифа, валидирует его, выпускает токен инвойса через бизнес-логику и
// возвращает данные для перехода к оплате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package start

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/tariffs"
)

// Handler обрабатывает запросы на начало оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики начала оплаты.
type Service interface {
	StartPayment(ctx context.Context, req models.StartPaymentRequest) (*models.PaymentStatus, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Начать оплату тарифа
// @Description Выпускает токен инвойса и возвращает ссылку для оплаты.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.StartPaymentRequest true "Данные оплаты"
// @Success 200 {object} response.Response "Статус платежа с токеном инвойса"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/start [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.start"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.StartPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	status, err := h.service.StartPayment(r.Context(), req)
	if errors.Is(err, tariffs.ErrUnknownTariff) {
		log.Error("unknown tariff", slog.String("tariff_code", req.TariffCode))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown tariff"))
		return
	}
	if err != nil {
		log.Error("failed to start payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start payment"))
		return
	}

	log.Info("success to start payment", slog.String("invoice_token", status.InvoiceToken))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment": status,
	}))
}
