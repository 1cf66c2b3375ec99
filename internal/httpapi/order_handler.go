package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriiBychkovskiy/proshop/internal/auth"
	"github.com/andriiBychkovskiy/proshop/internal/order"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, p auth.Principal) (*order.Order, error)
	GetByID(ctx context.Context, p auth.Principal, orderID string) (*order.Order, error)
	ListMine(ctx context.Context, p auth.Principal) ([]order.Order, error)
	ListAll(ctx context.Context, p auth.Principal) ([]order.Order, error)
	MarkPaid(ctx context.Context, p auth.Principal, orderID string, pr order.PaymentResult) (*order.Order, error)
	MarkDelivered(ctx context.Context, p auth.Principal, orderID string) (*order.Order, error)
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.PlaceOrder(r.Context(), principal(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListMine(r.Context(), principal(r))
	if err != nil {
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context(), principal(r))
	if err != nil {
		respondError(w, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var pr order.PaymentResult
	if err := decodeJSON(r, &pr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.orders.MarkPaid(r.Context(), principal(r), chi.URLParam(r, "id"), pr)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.MarkDelivered(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
