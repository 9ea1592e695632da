// Package settooluse реализует HTTP-обработчик начала и окончания сеанса работы с инструментом.
package settooluse

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

// Handler обрабатывает отметки о начале и конце работы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает смену флага использования.
type Service interface {
	SetInUse(ctx context.Context, toolID int64, use models.ToolUse, cardID string) (models.Outcome, error)
}

// Request — параметры запроса из URL.
type Request struct {
	ToolID int64
	Use    models.ToolUse
	CardID string `validate:"required"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает POST /{tool_id}/tooluse/{status}/{card_id}.
// Статус "1" начинает сеанс, любое другое число завершает его, не число отклоняется.
//
// @Summary Начало или конец сеанса работы
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Param status path int true "1 — начало, 0 — конец"
// @Param card_id path string true "ID карты"
// @Param X-AC-Key header string false "Секрет узла"
// @Success 200 {string} string "-1, 0 или 1"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /{tool_id}/tooluse/{status}/{card_id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.settooluse"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	rawStatus := chi.URLParam(r, "status")
	use := models.ParseToolUse(rawStatus)
	if use == models.UseInvalid {
		log.Warn("malformed tool use status", slog.String("status", rawStatus))
	}
	req := Request{ToolID: toolID, Use: use, CardID: chi.URLParam(r, "card_id")}

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

	outcome, err := h.service.SetInUse(r.Context(), req.ToolID, req.Use, req.CardID)
	if err != nil {
		log.Error("failed to set tool use", sl.Err(err))
		response.InternalError(w, r, "could not set tool use")
		return
	}

	metrics.Observe("tool_use", outcome)
	response.Text(w, http.StatusOK, outcome.Text())
}
