// Package settoolusetime реализует HTTP-обработчик отчёта узла о длительности сеанса.
package settoolusetime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/metrics"
	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// invalidDuration передаётся движку, если длительность в URL не число.
const invalidDuration = -1

// Handler обрабатывает отчёты о сеансах.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает запись отчёта о сеансе.
type Service interface {
	ReportUsage(ctx context.Context, toolID int64, cardID string, duration int64) (models.Outcome, error)
}

// Request — параметры запроса из URL.
type Request struct {
	ToolID   int64
	CardID   string `validate:"required"`
	Duration int64
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает POST /{tool_id}/tooluse/time/for/{card_id}/{duration}.
//
// @Summary Отчёт о длительности сеанса
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Param card_id path string true "ID карты"
// @Param duration path int true "Длительность в секундах"
// @Param X-AC-Key header string false "Секрет узла"
// @Success 200 {string} string "-1, 0 или 1"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /{tool_id}/tooluse/time/for/{card_id}/{duration} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.settoolusetime"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	duration, err := strconv.ParseInt(chi.URLParam(r, "duration"), 10, 64)
	if err != nil {
		duration = invalidDuration
	}
	req := Request{ToolID: toolID, CardID: chi.URLParam(r, "card_id"), Duration: duration}

	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		log.Error("failed to validate request", sl.Err(err))
		response.InternalError(w, r, "internal error")
		return
	}

	outcome, err := h.service.ReportUsage(r.Context(), req.ToolID, req.CardID, req.Duration)
	if err != nil {
		log.Error("failed to record tool usage", sl.Err(err))
		response.InternalError(w, r, "could not record tool usage")
		return
	}

	metrics.Observe("tool_use_time", outcome)
	response.Text(w, http.StatusOK, outcome.Text())
}
