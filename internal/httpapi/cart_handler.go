package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriiBychkovskiy/proshop/internal/cart"
	"github.com/andriiBychkovskiy/proshop/internal/catalog"
)

type CartStore interface {
	Load(ctx context.Context, userID string) (*cart.State, error)
	AddItem(ctx context.Context, userID string, it cart.Item) (*cart.State, error)
	RemoveItem(ctx context.Context, userID, productID string) (*cart.State, error)
	SetShippingAddress(ctx context.Context, userID string, a cart.ShippingAddress) (*cart.State, error)
	SetPaymentMethod(ctx context.Context, userID, name string) (*cart.State, error)
	Clear(ctx context.Context, userID string) (*cart.State, error)
}

// ProductGetter resolves the catalog snapshot for a cart line. The cart
// stores the price the shopper saw, not a reference into the catalog.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

type CartHandler struct {
	store    CartStore
	products ProductGetter
}

func NewCartHandler(store CartStore, products ProductGetter) *CartHandler {
	return &CartHandler{store: store, products: products}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Load(r.Context(), principal(r).UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if body.Qty < 1 {
		writeError(w, http.StatusBadRequest, "qty must be at least 1")
		return
	}

	p, err := h.products.Get(r.Context(), body.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	if body.Qty > p.CountInStock {
		writeError(w, http.StatusBadRequest, "qty exceeds stock")
		return
	}

	s, err := h.store.AddItem(r.Context(), principal(r).UserID, cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.Price,
		Qty:       body.Qty,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.RemoveItem(r.Context(), principal(r).UserID, chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) SetShippingAddress(w http.ResponseWriter, r *http.Request) {
	var a cart.ShippingAddress
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !a.Complete() {
		writeError(w, http.StatusBadRequest, "address, city, postal code and country are required")
		return
	}

	s, err := h.store.SetShippingAddress(r.Context(), principal(r).UserID, a)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "paymentMethod is required")
		return
	}

	s, err := h.store.SetPaymentMethod(r.Context(), principal(r).UserID, body.PaymentMethod)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Clear(r.Context(), principal(r).UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
