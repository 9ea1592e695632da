package rabbitmq

// AuditExchange — обменник, в который публикуются события журнала аудита.
const AuditExchange = "acnode.audit"

// QueueConfig описывает очередь и ключ маршрутизации, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAuditQueues возвращает очереди потребителей журнала аудита.
func GetAuditQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "acnode.audit.sink", RoutingKey: "tool.#"},
	}
}
