package cart

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/vendimax/backend-vendi/internal/common"
)

// Handler exposes the order-total endpoint.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// CalculateTotal handles POST /api/v1/cart/calculate-total.
func (h *Handler) CalculateTotal(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var c Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(c); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cart is empty", nil)
			return
		}
	} else if len(c.Items) == 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cart is empty", nil)
		return
	}
	summary, err := h.Svc.CalculateTotal(r.Context(), c)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "calculate order total", nil)
		return
	}
	common.JSON(w, http.StatusOK, summary)
}
