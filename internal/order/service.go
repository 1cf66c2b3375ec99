package order

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/andriiBychkovskiy/proshop/internal/apperr"
	"github.com/andriiBychkovskiy/proshop/internal/auth"
	"github.com/andriiBychkovskiy/proshop/internal/cart"
)

// Carts is the slice of the cart store the order flow needs.
type Carts interface {
	Load(ctx context.Context, userID string) (*cart.State, error)
	Clear(ctx context.Context, userID string) (*cart.State, error)
}

// Stock adjusts catalog availability after a sale.
type Stock interface {
	DecrementStock(ctx context.Context, productID string, qty int) error
}

// Publisher emits order lifecycle events. Publishing is best-effort: a broker
// outage must not fail a checkout that already committed.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
	PublishOrderPaid(ctx context.Context, o *Order) error
}

// Service drives the order lifecycle: creation from a finalized cart, then
// the two monotonic transitions.
type Service struct {
	repo      Repository
	carts     Carts
	stock     Stock
	publisher Publisher
	logger    *log.Logger

	// deliveryRequiresPayment gates MarkDelivered on isPaid. The original
	// system imposed no such guard, so it defaults off.
	deliveryRequiresPayment bool

	now func() time.Time
}

type Option func(*Service)

// WithDeliveryRequiresPayment makes MarkDelivered reject unpaid orders.
func WithDeliveryRequiresPayment(enabled bool) Option {
	return func(s *Service) { s.deliveryRequiresPayment = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, carts Carts, stock Stock, publisher Publisher, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		carts:     carts,
		stock:     stock,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PlaceOrder freezes the caller's cart into a new order, then clears the
// cart. The cart is cleared exactly once, only after the order committed.
func (s *Service) PlaceOrder(ctx context.Context, p auth.Principal) (*Order, error) {
	state, err := s.carts.Load(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	if len(state.Items) == 0 {
		return nil, apperr.Validation("no order items")
	}
	if !state.ShippingAddress.Complete() {
		return nil, apperr.Validation("shipping address is incomplete")
	}
	if state.PaymentMethod == "" {
		return nil, apperr.Validation("payment method is required")
	}

	o := &Order{
		UserID:          p.UserID,
		UserName:        p.Name,
		Items:           make([]Item, len(state.Items)),
		ShippingAddress: state.ShippingAddress,
		PaymentMethod:   state.PaymentMethod,
		ItemsPrice:      state.ItemsPrice,
		ShippingPrice:   state.ShippingPrice,
		TaxPrice:        state.TaxPrice,
		TotalPrice:      state.TotalPrice,
		CreatedAt:       s.now(),
	}
	for i, it := range state.Items {
		o.Items[i] = Item{ProductID: it.ProductID, Name: it.Name, Image: it.Image, Price: it.Price, Qty: it.Qty}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
		s.logger.Printf("publish OrderCreated %s: %v", o.ID, err)
	}

	for _, it := range o.Items {
		if err := s.stock.DecrementStock(ctx, it.ProductID, it.Qty); err != nil {
			s.logger.Printf("decrement stock %s: %v", it.ProductID, err)
		}
	}

	if _, err := s.carts.Clear(ctx, p.UserID); err != nil {
		// the order is already committed; a stale cart is recoverable,
		// a lost order is not
		s.logger.Printf("clear cart for %s: %v", p.UserID, err)
	}

	return o, nil
}

// GetByID returns an order. Any authenticated user can fetch by id, as in
// the original system.
func (s *Service) GetByID(ctx context.Context, p auth.Principal, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("order not found")
	}
	return o, nil
}

// ListMine returns the caller's own orders, newest first.
func (s *Service) ListMine(ctx context.Context, p auth.Principal) ([]Order, error) {
	return s.repo.ListByUser(ctx, p.UserID)
}

func (s *Service) ListAll(ctx context.Context, p auth.Principal) ([]Order, error) {
	if !p.IsAdmin {
		return nil, apperr.Authorization("not authorized as admin")
	}
	return s.repo.ListAll(ctx)
}

// MarkPaid records the payment confirmation. There is deliberately no guard
// against re-applying it to an already-paid order; the transition only ever
// sets the flag.
func (s *Service) MarkPaid(ctx context.Context, p auth.Principal, orderID string, pr PaymentResult) (*Order, error) {
	if pr.TransactionID == "" || pr.Status == "" || pr.PayerEmail == "" {
		return nil, apperr.Validation("payment confirmation must include transaction id, status and payer email")
	}

	o, err := s.GetByID(ctx, p, orderID)
	if err != nil {
		return nil, err
	}

	paidAt := s.now()
	if err := s.repo.MarkPaid(ctx, orderID, paidAt, pr); err != nil {
		// the row can vanish between the lookup and the update
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	o.IsPaid = true
	o.PaidAt = &paidAt
	o.PaymentResult = &pr

	if err := s.publisher.PublishOrderPaid(ctx, o); err != nil {
		s.logger.Printf("publish OrderPaid %s: %v", o.ID, err)
	}
	return o, nil
}

// MarkDelivered is administrator-only.
func (s *Service) MarkDelivered(ctx context.Context, p auth.Principal, orderID string) (*Order, error) {
	if !p.IsAdmin {
		return nil, apperr.Authorization("not authorized as admin")
	}

	o, err := s.GetByID(ctx, p, orderID)
	if err != nil {
		return nil, err
	}

	if s.deliveryRequiresPayment && !o.IsPaid {
		return nil, apperr.Validation("order is not paid")
	}

	deliveredAt := s.now()
	if err := s.repo.MarkDelivered(ctx, orderID, deliveredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}

	o.IsDelivered = true
	o.DeliveredAt = &deliveredAt
	return o, nil
}
