// Package isinuse реализует HTTP-обработчик проверки, занят ли инструмент.
package isinuse

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

// Handler отвечает "yes", "no" или "-1" для неизвестного инструмента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение инструмента.
type Service interface {
	InUse(ctx context.Context, toolID int64) (*models.Tool, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET /{tool_id}/is_tool_in_use.
//
// @Summary Занят ли инструмент
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Success 200 {string} string "yes, no или -1"
// @Router /{tool_id}/is_tool_in_use [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.isinuse"

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}

	tool, ok, err := h.service.InUse(r.Context(), toolID)
	if err != nil {
		h.log.Error("failed to read tool",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		response.InternalError(w, r, "could not read tool")
		return
	}
	if !ok {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	response.Text(w, http.StatusOK, tool.InUseDisplay())
}
