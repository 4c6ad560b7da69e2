// Package read реализует HTTP-обработчик получения подписки пользователя.
//
// Handler извлекает идентификатор пользователя из URL, читает подписку
// через бизнес-логику и возвращает ее вместе с текущей фазой.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
	"github.com/magabrotheeeer/vpn-billing/internal/storage/repository"
)

// Handler обрабатывает запросы на получение подписки пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Subscription(ctx context.Context, userID int64) (*models.Subscription, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписку пользователя
// @Description Возвращает подписку пользователя и ее текущую фазу.
// @Tags Subscriptions
// @Produce json
// @Param user_id path int true "Идентификатор пользователя"
// @Success 200 {object} response.Response "Подписка с фазой"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"
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

	sub, err := h.service.Subscription(r.Context(), userID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		log.Error("subscription not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	}
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("success to read subscription", slog.Int64("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
		"phase":        sub.PhaseAt(time.Now()),
	}))
}
