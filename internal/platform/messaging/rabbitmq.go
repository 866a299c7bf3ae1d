// Package messaging connects surgicare to the identity store's event bus.
// Identity-created events arrive on a RabbitMQ topic exchange and drive
// profile provisioning; successful provisioning is announced back on the
// same exchange.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	ExchangeName = "surgicare.events"
	ExchangeType = "topic"

	IdentityCreatedKey    = "identity.created"
	ProfileProvisionedKey = "profile.provisioned"

	provisionQueue = "surgicare.provisioning"
)

// Bus wraps a RabbitMQ connection with the exchange declared.
type Bus struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  zerolog.Logger
}

func NewBus(url string, logger zerolog.Logger) (*Bus, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(ExchangeName, ExchangeType, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	return &Bus{conn: conn, channel: channel, logger: logger}, nil
}

func (b *Bus) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// Publish sends an event with the given routing key.
func (b *Bus) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = b.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
