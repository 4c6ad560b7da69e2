// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/vpn-billing/internal/http/response"
	"github.com/magabrotheeeer/vpn-billing/internal/lib/sl"
)

// Handler обрабатывает запросы проверки готовности.
type Handler struct {
	log     *slog.Logger
	checker ReadinessChecker
}

// ReadinessChecker проверяет готовность хранилища.
type ReadinessChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New создает новый Handler с переданным логгером и проверкой хранилища.
func New(log *slog.Logger, checker ReadinessChecker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Проверяет доступность сервиса и его хранилища.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checker.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
