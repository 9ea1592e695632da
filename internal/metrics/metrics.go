// Package metrics объявляет метрики Prometheus сервера доступа.
// Метрики регистрируются в реестре по умолчанию и отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GuardRejections считает запросы, остановленные охранниками конвейера.
	GuardRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acnode",
		Name:      "guard_rejections_total",
		Help:      "Requests short-circuited by a request guard.",
	}, []string{"guard", "reason"})

	// ProtocolOutcomes считает результаты операций протокола узла.
	ProtocolOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acnode",
		Name:      "protocol_outcomes_total",
		Help:      "Node protocol results by operation and outcome.",
	}, []string{"operation", "outcome"})

	// GrantsCreated считает новые права, выданные делегированием.
	GrantsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acnode",
		Name:      "grants_created_total",
		Help:      "Permissions created through card-to-card delegation.",
	})

	// AuditPublishFailures считает события аудита, которые не удалось опубликовать в брокер.
	AuditPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acnode",
		Name:      "audit_publish_failures_total",
		Help:      "Audit events that could not be published to the message broker.",
	})
)

// Observe увеличивает счётчик результата операции протокола.
func Observe(operation string, outcome interface{ String() string }) {
	ProtocolOutcomes.WithLabelValues(operation, outcome.String()).Inc()
}
