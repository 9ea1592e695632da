// Package auditsink читает события журнала аудита из брокера и пишет их в лог.
package auditsink

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/acnode-server/internal/config"
	"github.com/magabrotheeeer/acnode-server/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
	"github.com/magabrotheeeer/acnode-server/internal/models"
	"github.com/magabrotheeeer/acnode-server/internal/services/audit"
)

// QueueName — очередь, из которой читает сервис.
const QueueName = "acnode.audit.sink"

type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RabbitMQ.URL == "" {
		return nil, errors.New("auditsink.New: rabbitmq url is not set")
	}
	conn, err := rabbitmq.Connect(logger, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to RabbitMQ")

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.AuditExchange, rabbitmq.GetAuditQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &App{
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, QueueName, Handle(a.logger)); err != nil {
		a.logger.Error("failed to start audit consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("audit sink shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}

// Handle возвращает обработчик сообщения очереди. Нераспознанные сообщения
// отбрасываются, иначе они возвращались бы в очередь бесконечно.
func Handle(logger *slog.Logger) func([]byte) error {
	return func(body []byte) error {
		var event audit.Event
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Error("dropping malformed audit event", sl.Err(err), slog.Int("size", len(body)))
			return nil
		}

		attrs := []any{
			slog.String("event_id", event.EventID),
			slog.String("kind", string(event.Kind)),
			slog.Int64("log_id", event.LogID),
			slog.Int64("tool_id", event.ToolID),
			slog.String("message", event.Message),
			slog.Time("created_at", event.CreatedAt),
		}
		if event.UserID != nil {
			attrs = append(attrs,
				slog.Int64("user_id", *event.UserID),
				slog.String("user_hsid", models.User{ID: *event.UserID}.HSID()),
			)
		}
		if event.Duration != nil {
			attrs = append(attrs, slog.Int64("duration", *event.Duration))
		}
		logger.Info("audit event", attrs...)
		return nil
	}
}
