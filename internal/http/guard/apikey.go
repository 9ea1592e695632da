package guard

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
)

// APIKey проверяет ключ API внешних систем в заголовке header.
type APIKey struct {
	key    string
	header string
	log    *slog.Logger
}

// NewAPIKey создает APIKey. Пустой key отклоняет все запросы.
func NewAPIKey(key, header string, log *slog.Logger) *APIKey {
	return &APIKey{key: key, header: header, log: log}
}

// Name возвращает имя проверки.
func (g *APIKey) Name() string { return "api-key" }

// Check выполняет проверку.
func (g *APIKey) Check(w http.ResponseWriter, r *http.Request) Verdict {
	values := r.Header.Values(g.header)
	if len(values) == 0 {
		g.log.Warn("missing API key",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		return g.unauthorized(w, r, "missing")
	}
	if g.key == "" || subtle.ConstantTimeCompare([]byte(values[0]), []byte(g.key)) != 1 {
		g.log.Warn("wrong API key",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
		)
		return g.unauthorized(w, r, "wrong")
	}
	return Continue
}

func (g *APIKey) unauthorized(w http.ResponseWriter, r *http.Request, reason string) Verdict {
	reject(g.Name(), reason)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error("unauthorized"))
	return ShortCircuit
}
