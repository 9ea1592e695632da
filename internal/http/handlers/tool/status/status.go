// Package status реализует HTTP-обработчик чтения статуса инструмента.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// Handler отдаёт статус инструмента: "1" — в эксплуатации, "0" — выведен, "-1" — неизвестен.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение статуса.
type Service interface {
	Status(ctx context.Context, toolID int64) (models.ToolStatus, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET /{tool_id}/status/.
//
// @Summary Статус инструмента
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Success 200 {string} string "-1, 0 или 1"
// @Router /{tool_id}/status/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}

	status, ok, err := h.service.Status(r.Context(), toolID)
	if err != nil {
		log.Error("failed to read tool status", sl.Err(err))
		response.InternalError(w, r, "could not read tool status")
		return
	}
	if !ok {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	response.Text(w, http.StatusOK, strconv.Itoa(int(status)))
}
