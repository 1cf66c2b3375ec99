package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriiBychkovskiy/proshop/internal/events"
	"github.com/andriiBychkovskiy/proshop/internal/order"
	"github.com/andriiBychkovskiy/proshop/internal/testutil"
)

type fixedSequence struct {
	next int64
}

func (f *fixedSequence) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestPublishOrderCreatedOverRabbit(t *testing.T) {
	conn, cleanup := testutil.StartRabbitMQ(t)
	t.Cleanup(cleanup)

	pub, err := events.NewRabbitPublisher(conn, &fixedSequence{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, events.OrderCreatedRoutingKey, events.EventsExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	o := &order.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalPrice: 125.00,
		Items: []order.Item{
			{ProductID: "p1", Name: "Camera", Price: 50.00, Qty: 2},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, pub.PublishOrderCreated(ctx, o))

	select {
	case msg := <-deliveries:
		var env events.EventEnvelope[events.OrderCreatedPayload]
		require.NoError(t, json.Unmarshal(msg.Body, &env))
		require.NoError(t, env.Validate(events.OrderCreatedEventName, events.OrderCreatedVersion))
		assert.Equal(t, "user-1", env.PartitionKey)
		assert.Equal(t, int64(1), env.Sequence)
		assert.Equal(t, "order-1", env.Payload.OrderID)
		assert.Equal(t, 125.00, env.Payload.TotalAmount)
	case <-ctx.Done():
		t.Fatalf("timed out waiting for OrderCreated delivery")
	}
}
