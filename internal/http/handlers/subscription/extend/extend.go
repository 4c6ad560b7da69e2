// Package extend реализует HTTP-обработчик продления подписки.
//
// Handler извлекает идентификатор пользователя из URL и число дней из
// тела запроса, продлевает подписку через бизнес-логику и возвращает
// обновленную запись. Продление отсчитывается от прежней границы
// активной фазы, а не от момента запроса.
package extend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/storage/repository"
)

// Request — входные данные запроса продления.
type Request struct {
	Days int `json:"days" validate:"required,gt=0"`
}

// Handler обрабатывает запросы на продление подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики продления подписки.
type Service interface {
	Extend(ctx context.Context, userID int64, days int) (*models.Subscription, error)
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
// @Summary Продлить подписку
// @Description Продлевает подписку пользователя на заданное число дней.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param user_id path int true "Идентификатор пользователя"
// @Param request body Request true "Число дней продления"
// @Success 200 {object} response.Response "Обновленная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{user_id}/extend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.extend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		log.Error("failed to decode user_id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

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

	sub, err := h.service.Extend(r.Context(), userID, req.Days)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		log.Error("subscription not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	}
	if err != nil {
		log.Error("failed to extend subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not extend subscription"))
		return
	}

	log.Info("success to extend subscription",
		slog.Int64("user_id", userID), slog.Int("days", req.Days))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}
