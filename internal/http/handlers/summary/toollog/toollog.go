// Package toollog реализует HTTP-обработчик выдачи журнала аудита инструмента.
package toollog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/services/summary"
)

// Handler отдаёт последние записи журнала инструмента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение журнала.
type Service interface {
	ToolLog(ctx context.Context, toolID int64, limit int) ([]summary.LogRecord, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET /api/get_tool_log/{tool_id}?limit=N.
//
// @Summary Журнал инструмента
// @Tags API
// @Produce json
// @Param API-KEY header string true "Ключ API"
// @Param tool_id path int true "ID инструмента"
// @Param limit query int false "Количество записей (по умолчанию 100, не больше 1000)"
// @Success 200 {array} summary.LogRecord
// @Failure 400 {object} response.ErrorResponse "Некорректный limit"
// @Failure 404 {object} response.ErrorResponse "Инструмент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/get_tool_log/{tool_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary.toollog"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tool not found"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			log.Error("invalid limit", slog.String("limit", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("limit must be a non-negative integer"))
			return
		}
	}

	res, found, err := h.service.ToolLog(r.Context(), toolID, limit)
	if err != nil {
		log.Error("failed to read tool log", sl.Err(err))
		response.InternalError(w, r, "could not read tool log")
		return
	}
	if !found {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tool not found"))
		return
	}

	render.JSON(w, r, res)
}
