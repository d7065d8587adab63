package payment

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/vendimax/backend-vendi/internal/cart"
	"github.com/vendimax/backend-vendi/internal/common"
)

// ProcessRequest is the wire payload for POST /api/v1/payment/process.
type ProcessRequest struct {
	Payment   *Insert    `json:"payment" validate:"required"`
	TotalCost int64      `json:"totalCost" validate:"required,gt=0"`
	Cart      *cart.Cart `json:"cart"`
}

// Handler exposes the payment endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// CashRegister handles GET /api/v1/payment/cash-register.
func (h *Handler) CashRegister(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "payment service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.CashInventory()})
}

// Process handles POST /api/v1/payment/process.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "payment service not configured", nil)
		return
	}
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", validationMessage(req), nil)
			return
		}
	} else if req.Payment == nil || req.TotalCost <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", validationMessage(req), nil)
		return
	}

	var items []cart.Item
	if req.Cart != nil {
		items = req.Cart.Items
	}
	result := h.Svc.ProcessPayment(r.Context(), *req.Payment, req.TotalCost, items)
	common.JSON(w, http.StatusOK, result)
}

func validationMessage(req ProcessRequest) string {
	if req.Payment == nil {
		return "payment information is required"
	}
	return "total cost must be greater than zero"
}
