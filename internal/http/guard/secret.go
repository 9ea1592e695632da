package guard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/services/deviceauth"
)

// Authenticator проверяет секрет, предъявленный узлом.
type Authenticator interface {
	Authenticate(ctx context.Context, toolID int64, presented *string, src deviceauth.Source) (deviceauth.Result, error)
}

// DeviceSecret проверяет общий секрет узла из заголовка header.
// При отказе отвечает "0" с кодом 200: так узел понимает отказ без разбора HTTP-статуса.
type DeviceSecret struct {
	auth   Authenticator
	header string
	log    *slog.Logger
}

// NewDeviceSecret создает DeviceSecret.
func NewDeviceSecret(auth Authenticator, header string, log *slog.Logger) *DeviceSecret {
	return &DeviceSecret{auth: auth, header: header, log: log}
}

// Name возвращает имя проверки.
func (g *DeviceSecret) Name() string { return "device-secret" }

// Check выполняет проверку.
func (g *DeviceSecret) Check(w http.ResponseWriter, r *http.Request) Verdict {
	toolID, err := strconv.ParseInt(chi.URLParam(r, "tool_id"), 10, 64)
	if err != nil {
		// без ID инструмента проверять нечего, маршрут ответит сам
		return Continue
	}

	var presented *string
	if values := r.Header.Values(g.header); len(values) > 0 {
		presented = &values[0]
	}

	result, err := g.auth.Authenticate(r.Context(), toolID, presented,
		deviceauth.Source{Path: r.URL.Path, RemoteAddr: r.RemoteAddr})
	if err != nil {
		g.log.Error("device authentication failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int64("tool_id", toolID),
			sl.Err(err),
		)
		response.InternalError(w, r, "internal error")
		return ShortCircuit
	}
	if !result.Allowed() {
		reject(g.Name(), result.String())
		response.Text(w, http.StatusOK, "0")
		return ShortCircuit
	}
	return Continue
}
