package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andriiBychkovskiy/proshop/internal/auth"
	"github.com/andriiBychkovskiy/proshop/internal/catalog"
)

type CatalogService interface {
	List(ctx context.Context, keyword string, page int) (*catalog.Page, error)
	Top(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (*catalog.Product, error)
	Create(ctx context.Context, p auth.Principal, product *catalog.Product) error
	Update(ctx context.Context, p auth.Principal, product *catalog.Product) error
	Delete(ctx context.Context, p auth.Principal, id string) error
	AddReview(ctx context.Context, p auth.Principal, productID string, rating int, comment string) error
}

type ProductHandler struct {
	catalog CatalogService
}

func NewProductHandler(c CatalogService) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page, _ := strconv.Atoi(r.URL.Query().Get("pageNumber"))

	pg, err := h.catalog.List(r.Context(), keyword, page)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pg)
}

func (h *ProductHandler) Top(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Top(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := decodeJSON(r, &product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.catalog.Create(r.Context(), principal(r), &product); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := decodeJSON(r, &product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	product.ID = chi.URLParam(r, "id")

	if err := h.catalog.Update(r.Context(), principal(r), &product); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), principal(r), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product removed"})
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.catalog.AddReview(r.Context(), principal(r), chi.URLParam(r, "id"), body.Rating, body.Comment); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "review added"})
}
