package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriiBychkovskiy/proshop/internal/order"
)

const (
	OrderCreatedEventName  = "OrderCreated"
	OrderCreatedVersion    = 1
	OrderCreatedSchemaPath = "contracts/events/order/OrderCreated.v1.enveloped.schema.json"

	OrderPaidEventName  = "OrderPaid"
	OrderPaidVersion    = 1
	OrderPaidSchemaPath = "contracts/events/order/OrderPaid.v1.enveloped.schema.json"
)

type OrderItemEvent struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderCreatedPayload struct {
	OrderID     string           `json:"orderId"`
	UserID      string           `json:"userId"`
	Items       []OrderItemEvent `json:"items"`
	TotalAmount float64          `json:"totalAmount"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderPaidPayload struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	TotalAmount   float64   `json:"totalAmount"`
	Timestamp     time.Time `json:"timestamp"`
}

// EnvelopeOptions carries the per-publish identity and context fields.
// Zero values are filled with sensible defaults by the builders.
type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	Producer      string
	CorrelationID string
	CausationID   string
	EventID       string
	OccurredAt    time.Time
}

func (o *EnvelopeOptions) applyDefaults() {
	if o.EventID == "" {
		o.EventID = uuid.NewString()
	}
	if o.OccurredAt.IsZero() {
		o.OccurredAt = time.Now().UTC()
	}
	if o.Producer == "" {
		o.Producer = producerName
	}
}

func BuildOrderCreatedEvent(ord *order.Order, opts EnvelopeOptions) EventEnvelope[OrderCreatedPayload] {
	opts.applyDefaults()

	payload := OrderCreatedPayload{
		OrderID:     ord.ID,
		UserID:      ord.UserID,
		TotalAmount: ord.TotalPrice,
		Timestamp:   opts.OccurredAt,
	}
	for _, it := range ord.Items {
		payload.Items = append(payload.Items, OrderItemEvent{
			ProductID: it.ProductID,
			Quantity:  it.Qty,
			Price:     it.Price,
		})
	}

	return EventEnvelope[OrderCreatedPayload]{
		EventName:     OrderCreatedEventName,
		EventVersion:  OrderCreatedVersion,
		EventID:       opts.EventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      opts.Producer,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    opts.OccurredAt,
		Schema:        OrderCreatedSchemaPath,
		Payload:       payload,
	}
}

func BuildOrderPaidEvent(ord *order.Order, opts EnvelopeOptions) EventEnvelope[OrderPaidPayload] {
	opts.applyDefaults()

	var txID string
	if ord.PaymentResult != nil {
		txID = ord.PaymentResult.TransactionID
	}

	return EventEnvelope[OrderPaidPayload]{
		EventName:     OrderPaidEventName,
		EventVersion:  OrderPaidVersion,
		EventID:       opts.EventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      opts.Producer,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    opts.OccurredAt,
		Schema:        OrderPaidSchemaPath,
		Payload: OrderPaidPayload{
			OrderID:       ord.ID,
			UserID:        ord.UserID,
			TransactionID: txID,
			TotalAmount:   ord.TotalPrice,
			Timestamp:     opts.OccurredAt,
		},
	}
}
