// Package trial реализует HTTP-обработчик создания пробной подписки.
//
// Handler извлекает идентификатор пользователя из query-параметра,
// создает пробную подписку через бизнес-логику и возвращает ее в
// JSON-формате. Прежняя запись пользователя заменяется.
package trial

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Handler обрабатывает запросы на создание пробной подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики пробного периода.
type Service interface {
	CreateTrial(ctx context.Context, userID int64) (*models.Subscription, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать пробную подписку
// @Description Создает пробную подписку пользователя, заменяя прежнюю запись.
// @Tags Subscriptions
// @Produce json
// @Param user_id query int true "Идентификатор пользователя"
// @Success 200 {object} response.Response "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /trial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.trial"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		log.Error("failed to decode user_id from query", sl.Err(errors.New("invalid user id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	sub, err := h.service.CreateTrial(r.Context(), userID)
	if err != nil {
		log.Error("failed to create trial subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create trial subscription"))
		return
	}

	log.Info("success to create trial subscription", slog.Int64("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}
