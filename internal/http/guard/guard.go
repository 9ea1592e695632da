// Package guard содержит проверки, которые выполняются до обработчиков протокола:
// ограничение частоты, секрет узла, диапазон адресов узлов и ключ API.
//
// Проверки собираются в явный упорядоченный конвейер. Каждая проверка либо
// пропускает запрос дальше (Continue), либо сама пишет ответ и прерывает
// конвейер (ShortCircuit).
package guard

import (
	"net/http"
	"net/netip"

	"github.com/magabrotheeeer/acnode-server/internal/metrics"
)

// Verdict — решение проверки.
type Verdict int

const (
	// Continue — передать запрос следующей проверке.
	Continue Verdict = iota
	// ShortCircuit — ответ уже записан, конвейер останавливается.
	ShortCircuit
)

// Guard — одна проверка конвейера.
type Guard interface {
	Name() string
	Check(w http.ResponseWriter, r *http.Request) Verdict
}

// Pipeline — упорядоченный набор проверок.
type Pipeline []Guard

// Middleware возвращает chi-совместимый middleware, который прогоняет запрос через все проверки по порядку.
func (p Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, g := range p {
			if g.Check(w, r) == ShortCircuit {
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Node собирает конвейер для запросов узлов: частота, секрет, диапазон адресов.
func Node(limit *RateLimit, secret *DeviceSecret, ip *IPRange) Pipeline {
	return Pipeline{limit, secret, ip}
}

// API собирает конвейер для API внешних систем.
func API(key *APIKey) Pipeline {
	return Pipeline{key}
}

func reject(guard, reason string) {
	metrics.GuardRejections.WithLabelValues(guard, reason).Inc()
}

// remoteAddr извлекает адрес клиента из RemoteAddr ("ip:port" или просто "ip").
func remoteAddr(r *http.Request) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap(), true
	}
	if a, err := netip.ParseAddr(r.RemoteAddr); err == nil {
		return a.Unmap(), true
	}
	return netip.Addr{}, false
}
