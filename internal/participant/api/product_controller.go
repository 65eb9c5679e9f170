package api

import (
	"net/http"
	"strconv"

	"github.com/abilic/ordergate/internal/domain/product"
	productSvc "github.com/abilic/ordergate/internal/participant/product"
	"github.com/go-chi/chi/v5"
)

// ProductController handles product and stock HTTP requests.
type ProductController struct {
	service *productSvc.Service
}

// NewProductController creates a new ProductController.
func NewProductController(service *productSvc.Service) *ProductController {
	return &ProductController{service: service}
}

// Get handles GET /api/products/{id}
func (h *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid product id", Code: "invalid_id"})
		return
	}

	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromProduct(p))
}

// ValidateStock handles POST /api/products/stock/validate
func (h *ProductController) ValidateStock(w http.ResponseWriter, r *http.Request) {
	items, err := decodeStockRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.ValidateStock(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ReserveStock handles POST /api/products/stock/reserve
func (h *ProductController) ReserveStock(w http.ResponseWriter, r *http.Request) {
	items, err := decodeStockRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.ReserveStock(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ReleaseStock handles POST /api/products/stock/release
func (h *ProductController) ReleaseStock(w http.ResponseWriter, r *http.Request) {
	items, err := decodeStockRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.ReleaseStock(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func decodeStockRequest(r *http.Request) ([]product.StockItem, error) {
	var req StockRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return nil, err
	}

	items := make([]product.StockItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, product.StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return items, nil
}
