package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_EmptyCart(t *testing.T) {
	got := Calculate(nil)

	assert.Equal(t, Totals{}, got, "empty carts carry no charges at all")
}

func TestCalculate_ScenarioA(t *testing.T) {
	// one item, price 50.00, qty 2 -> exactly at the free-shipping boundary
	got := Calculate([]Line{{Price: 50.00, Qty: 2}})

	assert.Equal(t, 100.00, got.ItemsPrice)
	assert.Equal(t, 10.00, got.ShippingPrice)
	assert.Equal(t, 15.00, got.TaxPrice)
	assert.Equal(t, 125.00, got.TotalPrice)
}

func TestCalculate_ScenarioB(t *testing.T) {
	// one item, price 60.00, qty 2 -> over the threshold, free shipping
	got := Calculate([]Line{{Price: 60.00, Qty: 2}})

	assert.Equal(t, 120.00, got.ItemsPrice)
	assert.Equal(t, 0.00, got.ShippingPrice)
	assert.Equal(t, 18.00, got.TaxPrice)
	assert.Equal(t, 138.00, got.TotalPrice)
}

func TestCalculate_ShippingBoundary(t *testing.T) {
	at := Calculate([]Line{{Price: 100.00, Qty: 1}})
	require.Equal(t, 100.00, at.ItemsPrice)
	assert.Equal(t, 10.00, at.ShippingPrice, "exactly 100.00 still pays shipping")

	over := Calculate([]Line{{Price: 100.01, Qty: 1}})
	require.Equal(t, 100.01, over.ItemsPrice)
	assert.Equal(t, 0.00, over.ShippingPrice, "100.01 ships free")
}

func TestCalculate_MultipleLines(t *testing.T) {
	got := Calculate([]Line{
		{Price: 19.99, Qty: 3},
		{Price: 5.50, Qty: 1},
	})

	assert.Equal(t, 65.47, got.ItemsPrice)
	assert.Equal(t, 10.00, got.ShippingPrice)
	assert.Equal(t, 9.82, got.TaxPrice) // 0.15 * 65.47 = 9.8205 -> 9.82
	// the total is the plain float sum of the rounded parts, never re-rounded
	assert.Equal(t, got.ItemsPrice+got.ShippingPrice+got.TaxPrice, got.TotalPrice)
	assert.InDelta(t, 85.29, got.TotalPrice, 0.001)
}

func TestCalculate_TotalIsSumOfRoundedComponents(t *testing.T) {
	got := Calculate([]Line{{Price: 33.335, Qty: 1}})

	assert.Equal(t, got.ItemsPrice+got.ShippingPrice+got.TaxPrice, got.TotalPrice)
}

func TestCalculate_Idempotent(t *testing.T) {
	lines := []Line{{Price: 12.34, Qty: 5}, {Price: 0.99, Qty: 7}}

	first := Calculate(lines)
	second := Calculate(lines)

	assert.Equal(t, first, second)
}

func TestAddDecimals(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.01}, // ties round up
		{1.004, 1.00},
		{99.999, 100.00},
		{10, 10},
		{0.1 + 0.2, 0.3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AddDecimals(c.in), "AddDecimals(%v)", c.in)
	}
}
