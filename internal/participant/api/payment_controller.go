package api

import (
	"net/http"

	"github.com/abilic/ordergate/internal/domain/payment"
	paymentSvc "github.com/abilic/ordergate/internal/participant/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PaymentController handles payment-related HTTP requests, including the
// FINA fault-injection console.
type PaymentController struct {
	service *paymentSvc.Service
	fina    *paymentSvc.FinancialAgency
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(service *paymentSvc.Service, fina *paymentSvc.FinancialAgency) *PaymentController {
	return &PaymentController{service: service, fina: fina}
}

// Create handles POST /api/payments
func (h *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodePaymentRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromPayment(p))
}

// Prepare handles POST /api/payments/prepare
func (h *PaymentController) Prepare(w http.ResponseWriter, r *http.Request) {
	req, err := decodePaymentRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.service.Prepare(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FromPayment(p))
}

// Get handles GET /api/payments/{id}
func (h *PaymentController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromPayment(p))
}

// GetByOrder handles GET /api/payments/order/{orderId}
func (h *PaymentController) GetByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	p, err := h.service.GetByOrderID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromPayment(p))
}

// Commit handles POST /api/payments/{id}/commit
func (h *PaymentController) Commit(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Commit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromPayment(p))
}

// Abort handles POST /api/payments/{id}/abort
func (h *PaymentController) Abort(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	if err := h.service.Abort(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Refund handles POST /api/payments/{id}/refund
func (h *PaymentController) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Refund(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromPayment(p))
}

// SetFinaAvailability handles PUT /api/config/fina/availability
func (h *PaymentController) SetFinaAvailability(w http.ResponseWriter, r *http.Request) {
	var req ConfigToggleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.fina.SetAvailability(*req.Enabled)
	writeJSON(w, http.StatusOK, ConfigSettingResponse{Setting: "fina_availability", Enabled: *req.Enabled})
}

// SetPreAuthorization handles PUT /api/config/fina/pre-authorization
func (h *PaymentController) SetPreAuthorization(w http.ResponseWriter, r *http.Request) {
	var req ConfigToggleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.fina.SetPreAuthorization(*req.Enabled)
	writeJSON(w, http.StatusOK, ConfigSettingResponse{Setting: "pre_authorization", Enabled: *req.Enabled})
}

// FinaStatus handles GET /api/config/fina/status
func (h *PaymentController) FinaStatus(w http.ResponseWriter, r *http.Request) {
	availability, preAuth := h.fina.State()
	writeJSON(w, http.StatusOK, FinaStatusResponse{
		AvailabilityEnabled:     availability,
		PreAuthorizationEnabled: preAuth,
	})
}

func decodePaymentRequest(r *http.Request) (paymentSvc.CreatePaymentRequest, error) {
	var req CreatePaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return paymentSvc.CreatePaymentRequest{}, err
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return paymentSvc.CreatePaymentRequest{}, err
	}
	return paymentSvc.CreatePaymentRequest{
		OrderID:            orderID,
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		PaymentMethod:      payment.PaymentMethod(req.PaymentMethod),
		PaymentProvider:    req.PaymentProvider,
		CardLastFourDigits: req.CardLastFourDigits,
	}, nil
}

func paymentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment id", Code: "invalid_id"})
		return uuid.Nil, false
	}
	return id, true
}
