package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andriiBychkovskiy/proshop/internal/order"
)

const publishTimeout = 3 * time.Second

// RabbitPublisher emits enveloped order events on the topic exchange.
// Events for the same user share a partition key, so their sequence
// numbers give consumers a per-user ordering.
type RabbitPublisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewRabbitPublisher(conn *amqp.Connection, sequences SequenceRepository) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{ch: ch, sequences: sequences}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	seq, err := p.sequences.NextSequence(ctx, o.UserID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ev := BuildOrderCreatedEvent(o, EnvelopeOptions{
		PartitionKey: o.UserID,
		Sequence:     seq,
	})

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}
	return p.publishJSON(ctx, OrderCreatedRoutingKey, body)
}

func (p *RabbitPublisher) PublishOrderPaid(ctx context.Context, o *order.Order) error {
	seq, err := p.sequences.NextSequence(ctx, o.UserID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ev := BuildOrderPaidEvent(o, EnvelopeOptions{
		PartitionKey: o.UserID,
		Sequence:     seq,
	})

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPaid: %w", err)
	}
	return p.publishJSON(ctx, OrderPaidRoutingKey, body)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
