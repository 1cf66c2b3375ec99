package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Auth     *AuthMiddleware
	Users    *UserHandler
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler

	PayPalClientID string
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(d.Auth.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/config/paypal", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"clientId": d.PayPalClientID})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", d.Products.List)
		r.Get("/top", d.Products.Top)
		r.Get("/{id}", d.Products.Get)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Post("/{id}/reviews", d.Products.AddReview)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Post("/", d.Products.Create)
			r.Put("/{id}", d.Products.Update)
			r.Delete("/{id}", d.Products.Delete)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", d.Users.Register)
		r.Post("/auth", d.Users.Login)
		r.Post("/logout", d.Users.Logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)
			r.Get("/profile", d.Users.GetProfile)
			r.Put("/profile", d.Users.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", d.Users.List)
			r.Get("/{id}", d.Users.GetByID)
			r.Put("/{id}", d.Users.UpdateByID)
			r.Delete("/{id}", d.Users.Delete)
		})
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/", d.Cart.Get)
		r.Delete("/", d.Cart.Clear)
		r.Post("/items", d.Cart.AddItem)
		r.Delete("/items/{productId}", d.Cart.RemoveItem)
		r.Put("/shipping", d.Cart.SetShippingAddress)
		r.Put("/payment", d.Cart.SetPaymentMethod)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Post("/", d.Orders.Place)
		r.Get("/mine", d.Orders.ListMine)
		r.Get("/{id}", d.Orders.Get)
		r.Put("/{id}/pay", d.Orders.Pay)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", d.Orders.ListAll)
			r.Put("/{id}/deliver", d.Orders.Deliver)
		})
	})

	return r
}
