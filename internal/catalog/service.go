package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/vendimax/backend-vendi/internal/common"
)

// ProductView is the wire representation of a catalog entry.
type ProductView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	Quantity       int    `json:"quantity"`
	IsAvailable    bool   `json:"isAvailable"`
	FormattedPrice string `json:"formattedPrice"`
}

// Service exposes catalog reads.
type Service struct {
	Store Store
}

// ListProducts returns every product in wire form.
func (s *Service) ListProducts(ctx context.Context) ([]ProductView, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	products, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			ID:             p.ID.String(),
			Name:           p.Name,
			Price:          p.Price.Amount(),
			Quantity:       p.Quantity,
			IsAvailable:    p.Available(),
			FormattedPrice: p.Price.Format(),
		})
	}
	return views, nil
}

// GetProduct returns a single product in wire form.
func (s *Service) GetProduct(ctx context.Context, rawID string) (ProductView, error) {
	if s == nil || s.Store == nil {
		return ProductView{}, errors.New("catalog service not configured")
	}
	id, err := NewProductID(rawID)
	if err != nil {
		return ProductView{}, common.NewAppError("VALIDATION_ERROR", "product id is required", http.StatusBadRequest, err)
	}
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ProductView{}, common.NewAppError("NOT_FOUND", "product not found", http.StatusNotFound, err)
		}
		return ProductView{}, err
	}
	return ProductView{
		ID:             p.ID.String(),
		Name:           p.Name,
		Price:          p.Price.Amount(),
		Quantity:       p.Quantity,
		IsAvailable:    p.Available(),
		FormattedPrice: p.Price.Format(),
	}, nil
}
