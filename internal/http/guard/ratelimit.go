package guard

import (
	"log/slog"
	"net/http"
	"net/netip"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepAbove = 1024
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit ограничивает частоту запросов с одного адреса.
type RateLimit struct {
	mu       sync.Mutex
	visitors map[netip.Addr]*visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
	log      *slog.Logger
}

// NewRateLimit создает RateLimit. rps <= 0 отключает ограничение.
func NewRateLimit(rps float64, burst int, log *slog.Logger) *RateLimit {
	return &RateLimit{
		visitors: make(map[netip.Addr]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		log:      log,
	}
}

// Name возвращает имя проверки.
func (g *RateLimit) Name() string { return "rate-limit" }

// Check выполняет проверку.
func (g *RateLimit) Check(w http.ResponseWriter, r *http.Request) Verdict {
	if g.rps <= 0 {
		return Continue
	}
	addr, ok := remoteAddr(r)
	if !ok {
		return Continue
	}
	if g.limiter(addr).Allow() {
		return Continue
	}

	g.log.Warn("too many requests", slog.String("remote_addr", r.RemoteAddr), slog.String("path", r.URL.Path))
	reject(g.Name(), "throttled")
	response.Text(w, http.StatusTooManyRequests, "too many requests\n")
	return ShortCircuit
}

func (g *RateLimit) limiter(addr netip.Addr) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if len(g.visitors) > limiterSweepAbove {
		for a, v := range g.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(g.visitors, a)
			}
		}
	}

	v, ok := g.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(g.rps, g.burst)}
		g.visitors[addr] = v
	}
	v.lastSeen = now
	return v.limiter
}
