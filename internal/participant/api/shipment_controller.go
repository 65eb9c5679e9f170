package api

import (
	"net/http"
	"time"

	shipmentSvc "github.com/abilic/ordergate/internal/participant/shipment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ShipmentController handles shipment-related HTTP requests, including the
// carrier fault-injection console.
type ShipmentController struct {
	service *shipmentSvc.Service
	carrier *shipmentSvc.CarrierGateway
}

// NewShipmentController creates a new ShipmentController.
func NewShipmentController(service *shipmentSvc.Service, carrier *shipmentSvc.CarrierGateway) *ShipmentController {
	return &ShipmentController{service: service, carrier: carrier}
}

// Create handles POST /api/shipments
func (h *ShipmentController) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeShipmentRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromShipment(s))
}

// Prepare handles POST /api/shipments/prepare
func (h *ShipmentController) Prepare(w http.ResponseWriter, r *http.Request) {
	req, err := decodeShipmentRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	s, err := h.service.Prepare(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromShipment(s))
}

// Get handles GET /api/shipments/{id}
func (h *ShipmentController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := shipmentID(w, r)
	if !ok {
		return
	}

	s, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromShipment(s))
}

// GetByOrder handles GET /api/shipments/order/{orderId}
func (h *ShipmentController) GetByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	s, err := h.service.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromShipment(s))
}

// Commit handles POST /api/shipments/{id}/commit
func (h *ShipmentController) Commit(w http.ResponseWriter, r *http.Request) {
	id, ok := shipmentID(w, r)
	if !ok {
		return
	}

	s, err := h.service.Commit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromShipment(s))
}

// Abort handles POST /api/shipments/{id}/abort
func (h *ShipmentController) Abort(w http.ResponseWriter, r *http.Request) {
	id, ok := shipmentID(w, r)
	if !ok {
		return
	}

	if err := h.service.Abort(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Cancel handles POST /api/shipments/{id}/cancel
func (h *ShipmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := shipmentID(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SetCarrierAvailability handles PUT /api/config/carrier/availability
func (h *ShipmentController) SetCarrierAvailability(w http.ResponseWriter, r *http.Request) {
	var req ConfigToggleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.carrier.SetAvailability(*req.Enabled)
	writeJSON(w, http.StatusOK, ConfigSettingResponse{Setting: "carrier_availability", Enabled: *req.Enabled})
}

// SetCarrierCapacity handles PUT /api/config/carrier/capacity
func (h *ShipmentController) SetCarrierCapacity(w http.ResponseWriter, r *http.Request) {
	var req ConfigToggleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.carrier.SetCapacity(*req.Enabled)
	writeJSON(w, http.StatusOK, ConfigSettingResponse{Setting: "carrier_capacity", Enabled: *req.Enabled})
}

// CarrierStatus handles GET /api/config/carrier/status
func (h *ShipmentController) CarrierStatus(w http.ResponseWriter, r *http.Request) {
	availability, capacity := h.carrier.State()
	writeJSON(w, http.StatusOK, CarrierStatusResponse{
		AvailabilityEnabled: availability,
		CapacityEnabled:     capacity,
		SupportedCarriers:   shipmentSvc.SupportedCarriers,
	})
}

func decodeShipmentRequest(r *http.Request) (shipmentSvc.CreateShipmentRequest, error) {
	var req CreateShipmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return shipmentSvc.CreateShipmentRequest{}, err
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return shipmentSvc.CreateShipmentRequest{}, err
	}

	var eta time.Time
	if req.EstimatedDeliveryDate != nil {
		eta = *req.EstimatedDeliveryDate
	}
	return shipmentSvc.CreateShipmentRequest{
		OrderID:               orderID,
		Carrier:               req.Carrier,
		EstimatedDeliveryDate: eta,
	}, nil
}

func shipmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid shipment id", Code: "invalid_id"})
		return uuid.Nil, false
	}
	return id, true
}
