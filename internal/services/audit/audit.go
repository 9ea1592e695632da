// Package audit формирует записи журнала аудита для переходов состояния инструментов
// и рассылает сохранённые записи подписчикам через брокер сообщений.
//
// Журнал только дополняется. Записи сохраняются хранилищем в той же транзакции,
// что и действие, которое они описывают; этот пакет лишь строит их
// и после фиксации публикует копию. Каноническим журналом остаётся база.
package audit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/metrics"
	"github.com/magabrotheeeer/acnode-server/internal/models"
)

// Тексты записей журнала. Узлы и отчёты опираются на них, менять нельзя.
const (
	MsgPutIntoService    = "Tool put into service"
	MsgTakenOutOfService = "Tool taken out of service"
	MsgAccessStarted     = "Access Started"
	MsgAccessFinished    = "Access Finished"
)

// Kind — вид события аудита; используется как суффикс ключа маршрутизации.
type Kind string

const (
	KindStatusChanged  Kind = "status_changed"
	KindAccessStarted  Kind = "access_started"
	KindAccessFinished Kind = "access_finished"
	KindUsageReported  Kind = "usage_reported"
)

// Record — запись журнала, ещё не сохранённая, вместе с видом события.
type Record struct {
	Kind  Kind
	Entry models.LogEntry
}

// StatusChanged строит запись о вводе инструмента в эксплуатацию или выводе из неё.
func StatusChanged(toolID, userID int64, status models.ToolStatus) Record {
	msg := MsgTakenOutOfService
	if status == models.ToolOperational {
		msg = MsgPutIntoService
	}
	return Record{Kind: KindStatusChanged, Entry: models.LogEntry{ToolID: toolID, UserID: &userID, Message: msg}}
}

// AccessStarted строит запись о начале сеанса работы.
func AccessStarted(toolID, userID int64) Record {
	return Record{Kind: KindAccessStarted, Entry: models.LogEntry{ToolID: toolID, UserID: &userID, Message: MsgAccessStarted}}
}

// AccessFinished строит запись об окончании сеанса работы.
func AccessFinished(toolID, userID int64) Record {
	return Record{Kind: KindAccessFinished, Entry: models.LogEntry{ToolID: toolID, UserID: &userID, Message: MsgAccessFinished}}
}

// UsageReported строит запись об отчёте узла о длительности сеанса.
func UsageReported(toolID, userID, seconds int64) Record {
	return Record{Kind: KindUsageReported, Entry: models.LogEntry{
		ToolID:   toolID,
		UserID:   &userID,
		Message:  fmt.Sprintf("Tool used for %d seconds", seconds),
		Duration: &seconds,
	}}
}

// Event — сообщение, публикуемое в брокер после фиксации записи.
type Event struct {
	EventID   string    `json:"event_id"`
	Kind      Kind      `json:"kind"`
	LogID     int64     `json:"log_id"`
	ToolID    int64     `json:"tool_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Message   string    `json:"message"`
	Duration  *int64    `json:"duration,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RoutingKey возвращает ключ маршрутизации события, например "tool.access_started".
func (e Event) RoutingKey() string {
	return "tool." + string(e.Kind)
}

// Publisher описывает отправку события в брокер.
type Publisher interface {
	Publish(routingKey, eventID string, message any) error
}

// Logger рассылает сохранённые записи журнала. Без издателя только пишет их в лог приложения.
type Logger struct {
	log       *slog.Logger
	publisher Publisher
}

// New создает Logger; publisher может быть nil, если брокер не настроен.
func New(log *slog.Logger, publisher Publisher) *Logger {
	return &Logger{log: log, publisher: publisher}
}

// Committed вызывается после фиксации транзакции с записью stored.
// Ошибка публикации не влияет на результат операции протокола.
func (l *Logger) Committed(kind Kind, stored models.LogEntry) {
	event := Event{
		EventID:   uuid.NewString(),
		Kind:      kind,
		LogID:     stored.ID,
		ToolID:    stored.ToolID,
		UserID:    stored.UserID,
		Message:   stored.Message,
		Duration:  stored.Duration,
		CreatedAt: stored.CreatedAt,
	}

	l.log.Info("audit entry recorded",
		slog.Int64("log_id", stored.ID),
		slog.Int64("tool_id", stored.ToolID),
		slog.String("message", stored.Message),
	)

	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(event.RoutingKey(), event.EventID, event); err != nil {
		metrics.AuditPublishFailures.Inc()
		l.log.Warn("failed to publish audit event",
			slog.String("event_id", event.EventID),
			slog.String("routing_key", event.RoutingKey()),
			slog.Int64("log_id", stored.ID),
			sl.Err(err),
		)
	}
}
