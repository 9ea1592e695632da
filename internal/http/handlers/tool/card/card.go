// Package card реализует HTTP-обработчик запроса узла о правах карты на инструмент.
//
// Ответ — уровень доступа простым текстом: "-1" (инструмент или карта неизвестны),
// "0" (нет прав или подписка не активна), "1" (пользователь), "2" (обслуживающий).
package card

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

// Handler обрабатывает запросы узлов о правах карты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис вычисления прав
	validate *validator.Validate // Валидатор параметров запроса
}

// Service описывает вычисление эффективного уровня доступа.
type Service interface {
	Resolve(ctx context.Context, cardID string, toolID int64) (models.PermissionLevel, error)
}

// Request — параметры запроса из URL.
type Request struct {
	ToolID int64
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

// ServeHTTP обрабатывает GET /{tool_id}/card/{card_id}.
//
// @Summary Права карты на инструмент
// @Tags Node
// @Produce plain
// @Param tool_id path int true "ID инструмента"
// @Param card_id path string true "ID карты"
// @Param X-AC-Key header string false "Секрет узла"
// @Success 200 {string} string "-1, 0, 1 или 2"
// @Failure 400 {object} response.Response "Некорректный ID карты"
// @Failure 403 {string} string "IP forbidden"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /{tool_id}/card/{card_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tool.card"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusOK, models.OutcomeNotFound.Text())
		return
	}
	req := Request{ToolID: toolID, CardID: chi.URLParam(r, "card_id")}

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

	level, err := h.service.Resolve(r.Context(), req.CardID, req.ToolID)
	if err != nil {
		log.Error("failed to resolve permission", sl.Err(err))
		response.InternalError(w, r, "could not resolve permission")
		return
	}

	metrics.Observe("card", level)
	log.Info("card checked",
		slog.Int64("tool_id", req.ToolID),
		slog.String("card_id", req.CardID),
		slog.String("level", level.String()),
	)
	response.Text(w, http.StatusOK, strconv.Itoa(int(level)))
}
