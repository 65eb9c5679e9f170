package controller

import (
	"net/http"

	"github.com/abilic/ordergate/internal/gateway/coordinator"
)

// PlaceController exposes the two place-order strategies.
type PlaceController struct {
	saga  *coordinator.SagaCoordinator
	twopc *coordinator.TwoPhaseCoordinator
}

func NewPlaceController(saga *coordinator.SagaCoordinator, twopc *coordinator.TwoPhaseCoordinator) *PlaceController {
	return &PlaceController{saga: saga, twopc: twopc}
}

// PlaceSaga handles POST /api/orders/place.
func (h *PlaceController) PlaceSaga(w http.ResponseWriter, r *http.Request) {
	var req coordinator.PlaceOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp := h.saga.PlaceOrder(r.Context(), req)
	writeJSON(w, placeStatus(resp.Success), resp)
}

// PlaceTwoPhase handles POST /api/orders/place-2pc.
func (h *PlaceController) PlaceTwoPhase(w http.ResponseWriter, r *http.Request) {
	var req coordinator.PlaceOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp := h.twopc.PlaceOrder(r.Context(), req)
	writeJSON(w, placeStatus(resp.Success), resp)
}

func placeStatus(success bool) int {
	if success {
		return http.StatusCreated
	}
	return http.StatusInternalServerError
}
