package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddItem)
		r.Delete("/cart/items/{id}", h.RemoveItem)
		r.Delete("/cart", h.ClearCart)
		r.Post("/checkout", h.Checkout)
	})

	return r
}
