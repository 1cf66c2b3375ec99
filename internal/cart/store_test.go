package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePersister stores serialized carts in memory and counts writes so tests
// can assert the save-on-every-mutation contract.
type fakePersister struct {
	data   map[string][]byte
	sets   int
	setErr error
}

func newFakePersister() *fakePersister {
	return &fakePersister{data: map[string][]byte{}}
}

func (f *fakePersister) Get(ctx context.Context, userID string) (*State, error) {
	raw, ok := f.data[userID]
	if !ok {
		return nil, ErrNotPersisted
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *fakePersister) Set(ctx context.Context, userID string, s *State) error {
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	f.data[userID] = raw
	f.sets++
	return nil
}

func (f *fakePersister) Delete(ctx context.Context, userID string) error {
	delete(f.data, userID)
	return nil
}

func TestStore_LoadFirstVisit(t *testing.T) {
	st := NewStore(newFakePersister())

	s, err := st.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, s.Items)
	assert.Equal(t, 0.00, s.TotalPrice)
}

func TestStore_EveryMutationPersists(t *testing.T) {
	p := newFakePersister()
	st := NewStore(p)
	ctx := context.Background()

	_, err := st.AddItem(ctx, "user-1", Item{ProductID: "p1", Price: 10, Qty: 1})
	require.NoError(t, err)
	_, err = st.SetShippingAddress(ctx, "user-1", ShippingAddress{Address: "a", City: "b", PostalCode: "c", Country: "d"})
	require.NoError(t, err)
	_, err = st.SetPaymentMethod(ctx, "user-1", "PayPal")
	require.NoError(t, err)
	_, err = st.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	_, err = st.Clear(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, p.sets)
}

func TestStore_PersistedStateIsSourceOfTruth(t *testing.T) {
	p := newFakePersister()
	st := NewStore(p)
	ctx := context.Background()

	_, err := st.AddItem(ctx, "user-1", Item{ProductID: "p1", Price: 60, Qty: 2})
	require.NoError(t, err)

	// a second store over the same persister sees the identical state
	reloaded, err := NewStore(p).Load(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 120.00, reloaded.ItemsPrice)
	assert.Equal(t, 138.00, reloaded.TotalPrice)
}

func TestStore_SaveFailureSurfaces(t *testing.T) {
	p := newFakePersister()
	p.setErr = errors.New("storage down")
	st := NewStore(p)

	s, err := st.AddItem(context.Background(), "user-1", Item{ProductID: "p1", Price: 10, Qty: 1})
	assert.Error(t, err)
	assert.Nil(t, s)
	assert.Empty(t, p.data, "nothing persisted on failure")
}

func TestStore_CartsAreScopedPerUser(t *testing.T) {
	st := NewStore(newFakePersister())
	ctx := context.Background()

	_, err := st.AddItem(ctx, "user-1", Item{ProductID: "p1", Price: 10, Qty: 1})
	require.NoError(t, err)

	other, err := st.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}
