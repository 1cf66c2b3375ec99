package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem_AppendsAndPrices(t *testing.T) {
	s := NewState()

	s.AddItem(Item{ProductID: "p1", Name: "Camera", Price: 50.00, Qty: 2})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 100.00, s.ItemsPrice)
	assert.Equal(t, 10.00, s.ShippingPrice)
	assert.Equal(t, 15.00, s.TaxPrice)
	assert.Equal(t, 125.00, s.TotalPrice)
}

func TestAddItem_ReplacesExistingLine(t *testing.T) {
	s := NewState()
	s.AddItem(Item{ProductID: "p1", Price: 50.00, Qty: 2})

	// same product again: quantity is replaced, not added, and the
	// snapshotted price is refreshed
	s.AddItem(Item{ProductID: "p1", Price: 60.00, Qty: 2})

	require.Len(t, s.Items, 1)
	assert.Equal(t, 60.00, s.Items[0].Price)
	assert.Equal(t, 2, s.Items[0].Qty)
	assert.Equal(t, 120.00, s.ItemsPrice)
	assert.Equal(t, 0.00, s.ShippingPrice)
	assert.Equal(t, 138.00, s.TotalPrice)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := NewState()
	s.AddItem(Item{ProductID: "p1", Price: 1, Qty: 1})
	s.AddItem(Item{ProductID: "p2", Price: 2, Qty: 1})
	s.AddItem(Item{ProductID: "p1", Price: 3, Qty: 1})

	require.Len(t, s.Items, 2)
	assert.Equal(t, "p1", s.Items[0].ProductID)
	assert.Equal(t, "p2", s.Items[1].ProductID)
}

func TestRemoveItem(t *testing.T) {
	s := NewState()
	s.AddItem(Item{ProductID: "p1", Price: 10, Qty: 1})
	s.AddItem(Item{ProductID: "p2", Price: 20, Qty: 1})

	s.RemoveItem("p1")

	require.Len(t, s.Items, 1)
	assert.Equal(t, "p2", s.Items[0].ProductID)
	assert.Equal(t, 20.00, s.ItemsPrice)

	s.RemoveItem("does-not-exist")
	assert.Len(t, s.Items, 1)
}

func TestClear_KeepsAddressAndPaymentMethod(t *testing.T) {
	s := NewState()
	s.AddItem(Item{ProductID: "p1", Price: 10, Qty: 3})
	s.SetShippingAddress(ShippingAddress{Address: "Main St 1", City: "Oslo", PostalCode: "0150", Country: "NO"})
	s.SetPaymentMethod("PayPal")

	s.Clear()

	assert.Empty(t, s.Items)
	assert.Equal(t, 0.00, s.ItemsPrice)
	assert.Equal(t, 0.00, s.ShippingPrice)
	assert.Equal(t, 0.00, s.TaxPrice)
	assert.Equal(t, 0.00, s.TotalPrice)
	assert.Equal(t, "Oslo", s.ShippingAddress.City)
	assert.Equal(t, "PayPal", s.PaymentMethod)
}

func TestShippingAddress_Complete(t *testing.T) {
	assert.False(t, ShippingAddress{}.Complete())
	assert.False(t, ShippingAddress{Address: "a", City: "b", PostalCode: "c"}.Complete())
	assert.True(t, ShippingAddress{Address: "a", City: "b", PostalCode: "c", Country: "d"}.Complete())
}

func TestState_JSONRoundTrip(t *testing.T) {
	s := NewState()
	s.AddItem(Item{ProductID: "p1", Name: "Camera", Image: "/images/camera.jpg", Price: 33.33, Qty: 3})
	s.SetShippingAddress(ShippingAddress{Address: "Main St 1", City: "Oslo", PostalCode: "0150", Country: "NO"})
	s.SetPaymentMethod("PayPal")

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))

	// recomputing on the restored state must not drift the derived fields
	before := restored
	restored.recalc()
	assert.Equal(t, before.ItemsPrice, restored.ItemsPrice)
	assert.Equal(t, before.ShippingPrice, restored.ShippingPrice)
	assert.Equal(t, before.TaxPrice, restored.TaxPrice)
	assert.Equal(t, before.TotalPrice, restored.TotalPrice)
	assert.Equal(t, *s, restored)
}
