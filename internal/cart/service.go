package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendimax/backend-vendi/internal/catalog"
	"github.com/vendimax/backend-vendi/internal/money"
)

// Item is one cart line as submitted by the caller.
type Item struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// Cart is the caller's selection.
type Cart struct {
	Items []Item `json:"items" validate:"required,min=1,dive"`
}

// OrderItem is a validated, priced cart line.
type OrderItem struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unitPrice"`
	LineTotal          int64  `json:"lineTotal"`
	FormattedUnitPrice string `json:"formattedUnitPrice"`
	FormattedLineTotal string `json:"formattedLineTotal"`
}

// Summary aggregates the order total and any per-line problems.
type Summary struct {
	Items          []OrderItem `json:"items"`
	SubTotal       int64       `json:"subTotal"`
	Total          int64       `json:"total"`
	FormattedTotal string      `json:"formattedTotal"`
	IsValid        bool        `json:"isValid"`
	Errors         []string    `json:"errors"`
}

// Service validates cart lines against the catalog and prices them.
type Service struct {
	Store catalog.Store
}

// CalculateTotal folds the cart into line items and a total. Problem lines
// are reported in the summary's errors and skipped; the fold continues so
// the caller sees every issue at once.
func (s *Service) CalculateTotal(ctx context.Context, c Cart) (Summary, error) {
	if s == nil || s.Store == nil {
		return Summary{}, errors.New("cart service not configured")
	}
	summary := Summary{Items: []OrderItem{}, Errors: []string{}}
	var total int64

	for _, line := range c.Items {
		if line.Quantity <= 0 {
			summary.Errors = append(summary.Errors, fmt.Sprintf("quantity for %s must be greater than 0", line.ProductID))
			continue
		}
		id, err := catalog.NewProductID(line.ProductID)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("invalid product id: %q", line.ProductID))
			continue
		}
		product, err := s.Store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("product not found: %s", line.ProductID))
				continue
			}
			return Summary{}, err
		}
		if !product.Available() {
			summary.Errors = append(summary.Errors, fmt.Sprintf("product sold out: %s", product.Name))
			continue
		}
		if line.Quantity > product.Quantity {
			summary.Errors = append(summary.Errors, fmt.Sprintf("not enough stock for %s: available %d, requested %d", product.Name, product.Quantity, line.Quantity))
			continue
		}

		lineTotal := product.Price.Mul(int64(line.Quantity))
		total += lineTotal.Amount()
		summary.Items = append(summary.Items, OrderItem{
			ProductID:          product.ID.String(),
			ProductName:        product.Name,
			Quantity:           line.Quantity,
			UnitPrice:          product.Price.Amount(),
			LineTotal:          lineTotal.Amount(),
			FormattedUnitPrice: product.Price.Format(),
			FormattedLineTotal: lineTotal.Format(),
		})
	}

	summary.SubTotal = total
	summary.Total = total
	summary.FormattedTotal = money.MustNew(total).Format()
	summary.IsValid = len(summary.Errors) == 0
	return summary, nil
}
