// Package toolsstatus реализует HTTP-обработчик сводки статусов всех инструментов.
//
// Ответ — JSON-массив объектов {name, status, status_message, in_use} в порядке ID инструментов.
package toolsstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/services/summary"
)

// Handler отдаёт сводку статусов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис сводок
}

// Service описывает построение сводки статусов.
type Service interface {
	ToolsStatus(ctx context.Context) ([]summary.ToolStatus, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает GET /api/get_tools_status.
//
// @Summary Статусы всех инструментов
// @Tags API
// @Produce json
// @Param API-KEY header string true "Ключ API"
// @Success 200 {array} summary.ToolStatus
// @Failure 401 {object} response.ErrorResponse "Нет или неверный ключ API"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/get_tools_status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.summary.toolsstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.ToolsStatus(r.Context())
	if err != nil {
		log.Error("failed to build tools status", sl.Err(err))
		response.InternalError(w, r, "could not build tools status")
		return
	}

	log.Debug("tools status built", slog.Int("tools", len(res)))
	render.JSON(w, r, res)
}
