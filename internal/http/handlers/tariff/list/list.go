// Package list реализует HTTP-обработчик для получения списка тарифов.
//
// Handler возвращает все тарифы каталога в JSON-формате.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Handler обрабатывает запросы на получение списка тарифов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики каталога тарифов
}

// Service описывает интерфейс бизнес-логики чтения каталога.
type Service interface {
	Tariffs() []models.Tariff
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифов
// @Description Возвращает все тарифы каталога, включая пробный.
// @Tags Tariffs
// @Produce json
// @Success 200 {object} response.Response "Список тарифов"
// @Router /tariffs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tariff.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tariffs := h.service.Tariffs()

	log.Info("success to list tariffs", slog.Int("count", len(tariffs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"tariffs": tariffs,
	}))
}
