package cart_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/vendimax/backend-vendi/internal/cart"
	"github.com/vendimax/backend-vendi/internal/catalog"
	"github.com/vendimax/backend-vendi/internal/money"
)

func mustMoney(v int64) money.Money { return money.MustNew(v) }

func newService() *cart.Service {
	return &cart.Service{Store: catalog.NewMemoryStore(catalog.DefaultProducts())}
}

func TestCalculateTotal(t *testing.T) {
	svc := newService()
	summary, err := svc.CalculateTotal(context.Background(), cart.Cart{Items: []cart.Item{
		{ProductID: "cocacola", Quantity: 2},
		{ProductID: "PEPSI", Quantity: 1},
	}})
	require.NoError(t, err)
	require.True(t, summary.IsValid)
	require.Empty(t, summary.Errors)
	require.Len(t, summary.Items, 2)
	require.Equal(t, int64(1600), summary.Items[0].LineTotal)
	require.Equal(t, int64(2350), summary.Total)
	require.Equal(t, summary.SubTotal, summary.Total)
	require.Equal(t, "₡2,350", summary.FormattedTotal)
	require.Equal(t, "₡800", summary.Items[0].FormattedUnitPrice)
}

func TestCalculateTotalCollectsErrorsAndContinues(t *testing.T) {
	svc := newService()
	summary, err := svc.CalculateTotal(context.Background(), cart.Cart{Items: []cart.Item{
		{ProductID: "COCACOLA", Quantity: 0},
		{ProductID: "MISSING", Quantity: 1},
		{ProductID: "PEPSI", Quantity: 99},
		{ProductID: "FANTA", Quantity: 1},
	}})
	require.NoError(t, err)
	require.False(t, summary.IsValid)
	require.Len(t, summary.Errors, 3)
	require.Contains(t, summary.Errors[0], "must be greater than 0")
	require.Contains(t, summary.Errors[1], "product not found: MISSING")
	require.Contains(t, summary.Errors[2], "not enough stock for Pepsi")

	// The one valid line is still priced.
	require.Len(t, summary.Items, 1)
	require.Equal(t, int64(950), summary.Total)
}

func TestCalculateTotalSoldOut(t *testing.T) {
	store := catalog.NewMemoryStore([]catalog.Product{
		{ID: "EMPTY", Name: "Empty", Price: mustMoney(100), Quantity: 0},
	})
	svc := &cart.Service{Store: store}
	summary, err := svc.CalculateTotal(context.Background(), cart.Cart{Items: []cart.Item{
		{ProductID: "EMPTY", Quantity: 1},
	}})
	require.NoError(t, err)
	require.False(t, summary.IsValid)
	require.Contains(t, summary.Errors[0], "sold out")
}

func TestCalculateTotalHandler(t *testing.T) {
	handler := &cart.Handler{Svc: newService(), Validate: validator.New()}

	body, _ := json.Marshal(cart.Cart{Items: []cart.Item{{ProductID: "SPRITE", Quantity: 2}}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/calculate-total", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.CalculateTotal(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary cart.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.True(t, summary.IsValid)
	require.Equal(t, int64(1950), summary.Total)
}

func TestCalculateTotalHandlerRejectsEmptyCart(t *testing.T) {
	handler := &cart.Handler{Svc: newService(), Validate: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/calculate-total", bytes.NewReader([]byte(`{"items":[]}`)))
	rec := httptest.NewRecorder()
	handler.CalculateTotal(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/cart/calculate-total", bytes.NewReader([]byte(`{`)))
	rec = httptest.NewRecorder()
	handler.CalculateTotal(rec, bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
