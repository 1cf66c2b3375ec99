// Package cart holds the shopper's pre-checkout selection and keeps its
// derived prices consistent with the line items on every mutation.
package cart

import (
	"github.com/andriiBychkovskiy/proshop/internal/pricing"
)

// Item is one product line in the cart. Price is snapshotted at add time.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether all four address fields are filled in. Checkout
// cannot proceed past the shipping step without a complete address.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// State is the full cart: line items in insertion order (at most one per
// product id), the checkout selections, and the four derived prices. The
// derived prices are never mutated independently; every mutation recomputes
// them synchronously, so no caller ever observes stale totals.
type State struct {
	Items           []Item          `json:"cartItems"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func NewState() *State {
	return &State{Items: []Item{}}
}

// AddItem inserts the item, or if a line with the same product id already
// exists, replaces its quantity and refreshes the snapshotted price in place.
func (s *State) AddItem(it Item) {
	for i := range s.Items {
		if s.Items[i].ProductID == it.ProductID {
			s.Items[i] = it
			s.recalc()
			return
		}
	}
	s.Items = append(s.Items, it)
	s.recalc()
}

// RemoveItem drops the line matching productID, if any.
func (s *State) RemoveItem(productID string) {
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	s.recalc()
}

// SetShippingAddress stores the address verbatim. Completeness is enforced
// by the checkout flow, not here.
func (s *State) SetShippingAddress(a ShippingAddress) {
	s.ShippingAddress = a
	s.recalc()
}

// SetPaymentMethod stores the method name verbatim.
func (s *State) SetPaymentMethod(name string) {
	s.PaymentMethod = name
	s.recalc()
}

// Clear empties the line items and zeroes the derived prices. The shipping
// address and payment method stay as last entered so a repeat purchase can
// reuse them.
func (s *State) Clear() {
	s.Items = []Item{}
	s.recalc()
}

func (s *State) recalc() {
	lines := make([]pricing.Line, len(s.Items))
	for i, it := range s.Items {
		lines[i] = pricing.Line{Price: it.Price, Qty: it.Qty}
	}
	t := pricing.Calculate(lines)
	s.ItemsPrice = t.ItemsPrice
	s.ShippingPrice = t.ShippingPrice
	s.TaxPrice = t.TaxPrice
	s.TotalPrice = t.TotalPrice
}
