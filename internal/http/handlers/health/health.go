// Package health реализует проверку готовности сервера.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger проверяет доступность кэша. nil означает, что кэш не настроен.
type CachePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log   *slog.Logger
	db    Pinger
	cache CachePinger
}

func New(log *slog.Logger, db Pinger, cache CachePinger) *Handler {
	return &Handler{
		log:   log,
		db:    db,
		cache: cache,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Error("database is unavailable", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is unavailable"))
		return
	}
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			h.log.Error("redis is unavailable", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("redis is unavailable"))
			return
		}
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
