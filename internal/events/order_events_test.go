package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriiBychkovskiy/proshop/internal/order"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:         uuid.NewString(),
		UserID:     "u1",
		TotalPrice: 125.00,
		Items: []order.Item{
			{ProductID: "p1", Name: "Camera", Price: 50.00, Qty: 2},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestBuildOrderCreatedEvent(t *testing.T) {
	o := sampleOrder()
	env := BuildOrderCreatedEvent(o, EnvelopeOptions{PartitionKey: o.UserID, Sequence: 7})

	require.NoError(t, env.Validate(OrderCreatedEventName, OrderCreatedVersion))
	assert.Equal(t, "u1", env.PartitionKey)
	assert.Equal(t, int64(7), env.Sequence)
	assert.Equal(t, producerName, env.Producer)
	assert.NotEmpty(t, env.EventID)
	assert.False(t, env.OccurredAt.IsZero())

	assert.Equal(t, o.ID, env.Payload.OrderID)
	assert.Equal(t, 125.00, env.Payload.TotalAmount)
	require.Len(t, env.Payload.Items, 1)
	assert.Equal(t, "p1", env.Payload.Items[0].ProductID)
	assert.Equal(t, 2, env.Payload.Items[0].Quantity)
}

func TestBuildOrderPaidEvent(t *testing.T) {
	o := sampleOrder()
	o.PaymentResult = &order.PaymentResult{TransactionID: "tx-9", Status: "COMPLETED"}

	env := BuildOrderPaidEvent(o, EnvelopeOptions{PartitionKey: o.UserID, Sequence: 8})

	require.NoError(t, env.Validate(OrderPaidEventName, OrderPaidVersion))
	assert.Equal(t, "tx-9", env.Payload.TransactionID)
	assert.Equal(t, 125.00, env.Payload.TotalAmount)
}

func TestEnvelopeValidateRejectsMismatch(t *testing.T) {
	o := sampleOrder()
	env := BuildOrderCreatedEvent(o, EnvelopeOptions{PartitionKey: o.UserID, Sequence: 1})

	assert.Error(t, env.Validate("WrongEvent", OrderCreatedVersion))
	assert.Error(t, env.Validate(OrderCreatedEventName, 2))

	env.PartitionKey = ""
	assert.Error(t, env.Validate(OrderCreatedEventName, OrderCreatedVersion))
}

func TestOrderCreatedEnvelopeWireShape(t *testing.T) {
	o := sampleOrder()
	env := BuildOrderCreatedEvent(o, EnvelopeOptions{PartitionKey: o.UserID, Sequence: 1})

	body, err := json.Marshal(env)
	require.NoError(t, err)

	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &asMap))

	for _, field := range []string{
		"eventName", "eventVersion", "eventId", "producer",
		"partitionKey", "sequence", "occurredAt", "schema", "payload",
	} {
		assert.Contains(t, asMap, field)
	}

	payload, ok := asMap["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", payload["userId"])
}
