package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

// maxInFlight — сколько событий аудита обрабатывается одновременно; совпадает с prefetch канала.
const maxInFlight = 10

// ConsumerMessage читает события аудита из очереди queueName и передает тело handler.
// Ошибка handler возвращает событие в очередь один раз; повторная ошибка на
// переотправленном событии отбрасывает его, чтобы одно событие не блокировало очередь.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("queue", queueName))
	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					log.Info("audit delivery channel closed")
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					settle(log, d, handler(d.Body))
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// settle подтверждает событие или возвращает его в очередь в зависимости от handlerErr.
func settle(log *slog.Logger, d amqp.Delivery, handlerErr error) {
	attrs := []any{
		slog.String("exchange", d.Exchange),
		slog.String("routing_key", d.RoutingKey),
		slog.String("event_id", d.MessageId),
		slog.Bool("redelivered", d.Redelivered),
	}

	if handlerErr == nil {
		if err := d.Ack(false); err != nil {
			log.Error("failed to ack audit event", append(attrs, sl.Err(err))...)
		}
		return
	}

	requeue := !d.Redelivered
	if requeue {
		log.Warn("audit event handling failed, requeueing", append(attrs, sl.Err(handlerErr))...)
	} else {
		log.Error("audit event failed again after redelivery, dropping", append(attrs, sl.Err(handlerErr))...)
	}
	if err := d.Nack(false, requeue); err != nil {
		log.Error("failed to nack audit event", append(attrs, slog.Bool("requeue", requeue), sl.Err(err))...)
	}
}
