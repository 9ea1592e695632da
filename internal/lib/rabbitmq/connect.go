// Package rabbitmq содержит подключение к RabbitMQ, объявление обменника и очередей
// журнала аудита, публикацию и потребление сообщений.
package rabbitmq

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/acnode-server/internal/lib/sl"
)

// Connect подключается к брокеру аудита: до retries попыток с паузой delay между ними.
// Неудачные попытки пишутся в лог без учетных данных из url.
func Connect(log *slog.Logger, url string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var err error

	if retries < 1 {
		retries = 1
	}
	for attempt := 1; attempt <= retries; attempt++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		if attempt == retries {
			break
		}
		log.Warn("audit broker is not reachable, retrying",
			slog.String("exchange", AuditExchange),
			slog.Int("attempt", attempt),
			slog.Int("retries", retries),
			slog.Duration("delay", delay),
			sl.Err(err),
		)
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: audit broker unreachable after %d attempts: %w", op, retries, err)
}

// SetupChannel открывает канал, объявляет topic-обменник exchange и привязывает к нему очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			exchange,
			false,
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
