// Package pricing derives cart totals from line items.
// All functions are pure; persistence is the caller's job.
package pricing

import "github.com/shopspring/decimal"

const (
	freeShippingThreshold = 100.0
	flatShippingPrice     = 10.0
	taxRate               = 0.15
)

// Line is the minimal view of a cart line item the calculator needs.
type Line struct {
	Price float64
	Qty   int
}

// Totals holds the four derived prices. TotalPrice is the sum of the three
// already-rounded components, never a re-rounding of unrounded inputs.
type Totals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// AddDecimals rounds to two decimal places: multiply by 100, round half away
// from zero, divide by 100.
func AddDecimals(n float64) float64 {
	return decimal.NewFromFloat(n).Round(2).InexactFloat64()
}

// Calculate computes the totals for the given lines. An empty slice yields
// all-zero totals; the flat shipping rate only applies once the cart holds
// something.
func Calculate(lines []Line) Totals {
	if len(lines) == 0 {
		return Totals{}
	}

	items := 0.0
	for _, l := range lines {
		items += l.Price * float64(l.Qty)
	}

	t := Totals{ItemsPrice: AddDecimals(items)}

	// free shipping over 100, else a flat 10
	if t.ItemsPrice > freeShippingThreshold {
		t.ShippingPrice = AddDecimals(0)
	} else {
		t.ShippingPrice = AddDecimals(flatShippingPrice)
	}

	t.TaxPrice = AddDecimals(taxRate * t.ItemsPrice)
	t.TotalPrice = t.ItemsPrice + t.ShippingPrice + t.TaxPrice
	return t
}
