// Package usersummary реализует HTTP-обработчик сводки прав пользователя по всем инструментам.
package usersummary

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

// Handler отдаёт сводку по пользователю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает построение сводки по пользователю.
type Service interface {
	ToolsSummaryForUser(ctx context.Context, userID int64) ([]summary.UserToolSummary, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET /api/get_tools_summary_for_user/{user_id}.
//
// @Summary Статусы инструментов и права пользователя
// @Tags API
// @Produce json
// @Param API-KEY header string true "Ключ API"
// @Param user_id path int true "ID пользователя"
// @Success 200 {array} summary.UserToolSummary
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Нет или неверный ключ API"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/get_tools_summary_for_user/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary.usersummary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		log.Error("failed to decode user_id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode user_id from url"))
		return
	}

	res, err := h.service.ToolsSummaryForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to build user summary", sl.Err(err))
		response.InternalError(w, r, "could not build user summary")
		return
	}

	render.JSON(w, r, res)
}
