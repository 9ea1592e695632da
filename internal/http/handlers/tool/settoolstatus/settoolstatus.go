// Package settoolstatus реализует HTTP-обработчик ввода инструмента в эксплуатацию и вывода из неё.
package settoolstatus

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

// invalidStatus передаётся движку, если статус в URL не число: движок ответит отказом
// после проверки инструмента и карты.
const invalidStatus = -1

// Handler обрабатывает запросы смены статуса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает смену статуса инструмента.
type Service interface {
	SetStatus(ctx context.Context, toolID int64, status int, cardID string) (models.Outcome, error)
}

// Request — параметры запроса из URL.
type Request struct {
	ToolID int64
	Status int
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

// ServeHTTP обрабатывает POST /{tool_id}/status/{status}/by/{card_id}.
//
// @Summary Сменить статус инструмента
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Param status path int true "1 — в эксплуатацию, 0 — вывести"
// @Param card_id path string true "ID карты"
// @Param X-AC-Key header string false "Секрет узла"
// @Success 200 {string} string "-1, 0 или 1"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /{tool_id}/status/{status}/by/{card_id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.settoolstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	status, err := strconv.Atoi(chi.URLParam(r, "status"))
	if err != nil {
		status = invalidStatus
	}
	req := Request{ToolID: toolID, Status: status, CardID: chi.URLParam(r, "card_id")}

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

	outcome, err := h.service.SetStatus(r.Context(), req.ToolID, req.Status, req.CardID)
	if err != nil {
		log.Error("failed to set tool status", sl.Err(err))
		response.InternalError(w, r, "could not set tool status")
		return
	}

	metrics.Observe("set_status", outcome)
	response.Text(w, http.StatusOK, outcome.Text())
}
