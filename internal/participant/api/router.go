package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// newRouter builds the base mux shared by every participant service.
func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// NewOrderRouter builds the order service HTTP surface.
func NewOrderRouter(h *OrderController) *chi.Mux {
	r := newRouter()
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/prepare", h.Prepare)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/commit", h.Commit)
		r.Post("/{id}/abort", h.Abort)
		r.Post("/{id}/cancel", h.Cancel)
	})
	return r
}

// NewPaymentRouter builds the payment service HTTP surface.
func NewPaymentRouter(h *PaymentController) *chi.Mux {
	r := newRouter()
	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/prepare", h.Prepare)
		r.Get("/{id}", h.Get)
		r.Get("/order/{orderId}", h.GetByOrder)
		r.Post("/{id}/commit", h.Commit)
		r.Post("/{id}/abort", h.Abort)
		r.Post("/{id}/refund", h.Refund)
	})
	r.Route("/api/config/fina", func(r chi.Router) {
		r.Put("/availability", h.SetFinaAvailability)
		r.Put("/pre-authorization", h.SetPreAuthorization)
		r.Get("/status", h.FinaStatus)
	})
	return r
}

// NewShipmentRouter builds the shipping service HTTP surface.
func NewShipmentRouter(h *ShipmentController) *chi.Mux {
	r := newRouter()
	r.Route("/api/shipments", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/prepare", h.Prepare)
		r.Get("/{id}", h.Get)
		r.Get("/order/{orderId}", h.GetByOrder)
		r.Post("/{id}/commit", h.Commit)
		r.Post("/{id}/abort", h.Abort)
		r.Post("/{id}/cancel", h.Cancel)
	})
	r.Route("/api/config/carrier", func(r chi.Router) {
		r.Put("/availability", h.SetCarrierAvailability)
		r.Put("/capacity", h.SetCarrierCapacity)
		r.Get("/status", h.CarrierStatus)
	})
	return r
}

// NewProductRouter builds the product service HTTP surface.
func NewProductRouter(h *ProductController) *chi.Mux {
	r := newRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/{id}", h.Get)
		r.Post("/stock/validate", h.ValidateStock)
		r.Post("/stock/reserve", h.ReserveStock)
		r.Post("/stock/release", h.ReleaseStock)
	})
	return r
}
