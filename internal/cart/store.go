package cart

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotPersisted is returned by a Persister when no cart exists for the key.
var ErrNotPersisted = errors.New("no cart persisted")

// Persister is the durable key-value storage the cart lives in. It is the
// sole source of truth across reloads; the store never caches between calls.
type Persister interface {
	Get(ctx context.Context, userID string) (*State, error)
	Set(ctx context.Context, userID string, s *State) error
	Delete(ctx context.Context, userID string) error
}

// Store owns cart state explicitly: every operation loads the user's cart,
// applies one mutation, and saves the result before returning it. The
// recompute-and-persist pair is a single unit; on a save failure the caller
// never sees the mutated state.
type Store struct {
	persister Persister
}

func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Load returns the user's cart, or a fresh empty cart on first visit.
func (st *Store) Load(ctx context.Context, userID string) (*State, error) {
	s, err := st.persister.Get(ctx, userID)
	if errors.Is(err, ErrNotPersisted) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return s, nil
}

func (st *Store) AddItem(ctx context.Context, userID string, it Item) (*State, error) {
	return st.mutate(ctx, userID, func(s *State) { s.AddItem(it) })
}

func (st *Store) RemoveItem(ctx context.Context, userID, productID string) (*State, error) {
	return st.mutate(ctx, userID, func(s *State) { s.RemoveItem(productID) })
}

func (st *Store) SetShippingAddress(ctx context.Context, userID string, a ShippingAddress) (*State, error) {
	return st.mutate(ctx, userID, func(s *State) { s.SetShippingAddress(a) })
}

func (st *Store) SetPaymentMethod(ctx context.Context, userID, name string) (*State, error) {
	return st.mutate(ctx, userID, func(s *State) { s.SetPaymentMethod(name) })
}

// Clear resets the items after a successful checkout. Address and payment
// method survive, matching what the shopper last entered.
func (st *Store) Clear(ctx context.Context, userID string) (*State, error) {
	return st.mutate(ctx, userID, func(s *State) { s.Clear() })
}

func (st *Store) mutate(ctx context.Context, userID string, fn func(*State)) (*State, error) {
	s, err := st.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	fn(s)

	if err := st.persister.Set(ctx, userID, s); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s, nil
}
