// Package audit publishes ledger audit entries to a RabbitMQ topic
// exchange. Consumers (reporting, alerting) subscribe independently; the
// publisher never blocks or fails a ledger action.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

const (
	ExchangeName = "heritage.audit"
	ExchangeKind = "topic"
)

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Log publishes the entry with the collection name as routing key, e.g.
// "heritage.audit" / "bookings". Messages are persistent so audit history
// survives broker restarts.
func (p *Publisher) Log(ctx context.Context, entry ledger.AuditEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		ExchangeName,
		entry.Collection,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    entry.At,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish audit entry: %w", err)
	}

	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}

	if p.conn != nil {
		p.conn.Close()
	}
}
