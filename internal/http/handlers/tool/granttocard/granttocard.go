// Package granttocard реализует HTTP-обработчик выдачи права на инструмент
// с карты обслуживающего на карту другого пользователя.
package granttocard

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

// Handler обрабатывает запросы на выдачу прав.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает протокол делегирования.
type Service interface {
	Grant(ctx context.Context, toolID int64, toCardID, byCardID string) (models.Outcome, error)
}

// Request — параметры запроса из URL.
type Request struct {
	ToolID   int64
	ToCardID string `validate:"required"`
	ByCardID string `validate:"required"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает POST /{tool_id}/grant-to-card/{to_card_id}/by-card/{by_card_id}.
//
// @Summary Выдать право "user" с карты обслуживающего
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Param to_card_id path string true "Карта получателя"
// @Param by_card_id path string true "Карта обслуживающего"
// @Param X-AC-Key header string false "Секрет узла"
// @Success 200 {string} string "-1, 0 или 1"
// @Failure 400 {object} response.Response "Некорректный ID карты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /{tool_id}/grant-to-card/{to_card_id}/by-card/{by_card_id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.granttocard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	req := Request{
		ToolID:   toolID,
		ToCardID: chi.URLParam(r, "to_card_id"),
		ByCardID: chi.URLParam(r, "by_card_id"),
	}

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

	outcome, err := h.service.Grant(r.Context(), req.ToolID, req.ToCardID, req.ByCardID)
	if err != nil {
		log.Error("failed to grant permission", sl.Err(err))
		response.InternalError(w, r, "could not grant permission")
		return
	}

	metrics.Observe("grant", outcome)
	response.Text(w, http.StatusOK, outcome.Text())
}
