package controller

import (
	"context"
	"net/http"

	"github.com/abilic/ordergate/internal/gateway/client"
	"github.com/abilic/ordergate/internal/participant/api"
)

// ConfigController proxies fault-injection toggles to the payment and
// shipping services so operators can drive failure scenarios from one place.
type ConfigController struct {
	payments  client.PaymentClient
	shipments client.ShipmentClient
}

func NewConfigController(payments client.PaymentClient, shipments client.ShipmentClient) *ConfigController {
	return &ConfigController{payments: payments, shipments: shipments}
}

// SetFinaAvailability handles PUT /api/config/fina/availability.
func (h *ConfigController) SetFinaAvailability(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.payments.SetFinaAvailability)
}

// SetPreAuthorization handles PUT /api/config/fina/pre-authorization.
func (h *ConfigController) SetPreAuthorization(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.payments.SetPreAuthorization)
}

// FinaStatus handles GET /api/config/fina/status.
func (h *ConfigController) FinaStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.payments.FinaStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// SetCarrierAvailability handles PUT /api/config/carrier/availability.
func (h *ConfigController) SetCarrierAvailability(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.shipments.SetCarrierAvailability)
}

// SetCarrierCapacity handles PUT /api/config/carrier/capacity.
func (h *ConfigController) SetCarrierCapacity(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.shipments.SetCarrierCapacity)
}

// CarrierStatus handles GET /api/config/carrier/status.
func (h *ConfigController) CarrierStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.shipments.CarrierStatus(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ConfigController) toggle(
	w http.ResponseWriter,
	r *http.Request,
	set func(ctx context.Context, enabled bool) (*api.ConfigSettingResponse, error),
) {
	var req api.ConfigToggleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	setting, err := set(r.Context(), *req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
