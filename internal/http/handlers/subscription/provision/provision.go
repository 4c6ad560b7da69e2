// Package provision реализует HTTP-обработчик выдачи профиля подключения.
//
// Handler принимает JSON-запрос с идентификатором пользователя, протоколом
// и именем устройства, запрашивает профиль у сервиса провижининга через
// бизнес-логику и возвращает его в JSON-формате. Ошибки емкости и лимита
// трафика коллаборатора транслируются в соответствующие HTTP-статусы.
package provision

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
	"github.com/magabrotheeeer/vpn-billing/internal/provisioner"
	"github.com/magabrotheeeer/vpn-billing/internal/services/billing"
	"github.com/magabrotheeeer/vpn-billing/internal/storage/repository"
)

// Request — входные данные запроса профиля подключения.
type Request struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0"`
	Protocol   string `json:"protocol" validate:"required,oneof=wireguard openvpn"`
	DeviceName string `json:"device_name" validate:"required"`
}

// Handler обрабатывает запросы на выдачу профиля подключения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выдачи профиля.
type Service interface {
	Provision(ctx context.Context, userID int64, protocol, deviceName string) (*provisioner.ProvisionResponse, error)
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
// @Summary Выдать профиль подключения
// @Description Запрашивает VPN-профиль для текущей подписки пользователя.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body Request true "Параметры подключения"
// @Success 200 {object} response.Response "Профиль подключения"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 402 {object} response.ErrorResponse "Подписка истекла"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 409 {object} response.ErrorResponse "Нет свободной емкости"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Лимит трафика исчерпан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /provision [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.provision"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, err := h.service.Provision(r.Context(), req.UserID, req.Protocol, req.DeviceName)
	switch {
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		log.Error("subscription not found", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	case errors.Is(err, billing.ErrSubscriptionExpired):
		log.Error("subscription expired", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusPaymentRequired)
		render.JSON(w, r, response.Error("subscription expired"))
		return
	case errors.Is(err, provisioner.ErrCapacityExceeded):
		log.Error("provisioner capacity exceeded", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("no capacity available"))
		return
	case errors.Is(err, provisioner.ErrTrafficCapExceeded):
		log.Error("traffic cap exceeded", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusTooManyRequests)
		render.JSON(w, r, response.Error("traffic cap exceeded"))
		return
	case err != nil:
		log.Error("failed to provision profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not provision profile"))
		return
	}

	log.Info("success to provision profile",
		slog.Int64("user_id", req.UserID), slog.String("protocol", req.Protocol))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": profile,
	}))
}
