package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marketdex/economy/internal/services/economy"
)

// NewRouter registers all API endpoints.
func NewRouter(svc *economy.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/shop", h.ViewShopHandler)

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/collection", h.CollectionHandler)
		r.Post("/purchase", h.PurchaseHandler)
		r.Post("/exchange", h.ExchangeHandler)
		r.Post("/claim", h.ClaimHandler)
		r.Post("/grant", h.GrantHandler)
	})

	return r
}
