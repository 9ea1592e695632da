package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// PublishMessage публикует событие аудита message в exchange с ключом routingKey.
// eventID попадает в MessageId и позволяет потребителю связать повторы одного события.
func PublishMessage(ch *amqp.Channel, exchange, routingKey, eventID string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    eventID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: publish %s to %s: %w", op, routingKey, exchange, err)
	}
	return nil
}

// Publisher публикует сообщения в один обменник через общий канал.
// Публикации сериализуются: канал используется из многих обработчиков запросов.
type Publisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// Publish публикует message с ключом маршрутизации routingKey.
func (p *Publisher) Publish(routingKey, eventID string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, routingKey, eventID, message)
}
