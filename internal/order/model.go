package order

import (
	"time"

	"github.com/andriiBychkovskiy/proshop/internal/cart"
)

// Item is a frozen copy of a cart line at order-creation time. Later catalog
// price changes never touch it.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// PaymentResult is the confirmation payload returned by the payment
// collaborator, modeled explicitly instead of trusting an arbitrary shape.
type PaymentResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	UpdateTime    string `json:"updateTime"`
	PayerEmail    string `json:"payerEmail"`
}

// Order is immutable after creation except for the two one-way status flags.
type Order struct {
	ID              string               `json:"_id"`
	UserID          string               `json:"user"`
	UserName        string               `json:"userName"`
	Items           []Item               `json:"orderItems"`
	ShippingAddress cart.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string               `json:"paymentMethod"`
	ItemsPrice      float64              `json:"itemsPrice"`
	ShippingPrice   float64              `json:"shippingPrice"`
	TaxPrice        float64              `json:"taxPrice"`
	TotalPrice      float64              `json:"totalPrice"`
	IsPaid          bool                 `json:"isPaid"`
	PaidAt          *time.Time           `json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult       `json:"paymentResult,omitempty"`
	IsDelivered     bool                 `json:"isDelivered"`
	DeliveredAt     *time.Time           `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}
