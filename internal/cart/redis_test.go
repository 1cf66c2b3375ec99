package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisPersister(t *testing.T) *RedisPersister {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPersister(client)
}

func TestRedisPersister_GetMissing(t *testing.T) {
	p := setupRedisPersister(t)

	_, err := p.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotPersisted)
}

func TestRedisPersister_SetGetRoundTrip(t *testing.T) {
	p := setupRedisPersister(t)
	ctx := context.Background()

	s := NewState()
	s.AddItem(Item{ProductID: "p1", Name: "Camera", Price: 50, Qty: 2})
	s.SetPaymentMethod("PayPal")

	require.NoError(t, p.Set(ctx, "user-1", s))

	got, err := p.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, 125.00, got.TotalPrice)
}

func TestRedisPersister_Delete(t *testing.T) {
	p := setupRedisPersister(t)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "user-1", NewState()))
	require.NoError(t, p.Delete(ctx, "user-1"))

	_, err := p.Get(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotPersisted)
}
