package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange         = "storefront.events"
	OrderCreatedRoutingKey = "order.created.v1"
	OrderPaidRoutingKey    = "order.paid.v1"
	producerName           = "storefront"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
