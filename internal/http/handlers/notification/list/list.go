// Package list реализует HTTP-обработчик для получения расписания напоминаний.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Handler обрабатывает запросы на получение расписания напоминаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания напоминаний.
type Service interface {
	Schedule() []models.ScheduleEntry
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Расписание напоминаний
// @Description Возвращает действующие правила отправки напоминаний.
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Response "Расписание напоминаний"
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entries := h.service.Schedule()

	log.Info("success to list notification schedule", slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"notifications": entries,
	}))
}
