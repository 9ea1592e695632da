package guard

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/magabrotheeeer/acnode-server/internal/http/response"
)

// IPRange пропускает только запросы из разрешённых сетей узлов.
// Пустой список сетей снимает ограничение.
type IPRange struct {
	networks []netip.Prefix
	log      *slog.Logger
}

// NewIPRange разбирает сети в нотации CIDR, например "10.0.0.0/24".
func NewIPRange(networks []string, log *slog.Logger) (*IPRange, error) {
	prefixes := make([]netip.Prefix, 0, len(networks))
	for _, n := range networks {
		p, err := netip.ParsePrefix(n)
		if err != nil {
			return nil, fmt.Errorf("guard.NewIPRange: %w", err)
		}
		prefixes = append(prefixes, p.Masked())
	}
	return &IPRange{networks: prefixes, log: log}, nil
}

// Name возвращает имя проверки.
func (g *IPRange) Name() string { return "ip-range" }

// Allows сообщает, входит ли адрес в одну из разрешённых сетей.
func (g *IPRange) Allows(addr netip.Addr) bool {
	if len(g.networks) == 0 {
		return true
	}
	for _, p := range g.networks {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Check выполняет проверку.
func (g *IPRange) Check(w http.ResponseWriter, r *http.Request) Verdict {
	addr, ok := remoteAddr(r)
	if ok && g.Allows(addr) {
		return Continue
	}
	g.log.Warn("invalid access attempt", slog.String("remote_addr", r.RemoteAddr), slog.String("path", r.URL.Path))
	reject(g.Name(), "forbidden")
	response.Text(w, http.StatusForbidden, "IP forbidden\n")
	return ShortCircuit
}
