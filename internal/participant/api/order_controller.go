package api

import (
	"net/http"

	orderSvc "github.com/abilic/ordergate/internal/participant/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderController handles order-related HTTP requests.
type OrderController struct {
	service *orderSvc.Service
}

// NewOrderController creates a new OrderController.
func NewOrderController(service *orderSvc.Service) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /api/orders
func (h *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	o, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromOrder(o))
}

// Prepare handles POST /api/orders/prepare
func (h *OrderController) Prepare(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	o, err := h.service.Prepare(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromOrder(o))
}

// Get handles GET /api/orders/{id}
func (h *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromOrder(o))
}

// Commit handles POST /api/orders/{id}/commit
func (h *OrderController) Commit(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	o, err := h.service.Commit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromOrder(o))
}

// Abort handles POST /api/orders/{id}/abort
func (h *OrderController) Abort(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.Abort(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Cancel handles POST /api/orders/{id}/cancel
func (h *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func decodeOrderRequest(r *http.Request) (orderSvc.CreateOrderRequest, error) {
	var req CreateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return orderSvc.CreateOrderRequest{}, err
	}

	items := make([]orderSvc.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderSvc.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orderSvc.CreateOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}, nil
}

func orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return uuid.Nil, false
	}
	return id, true
}
