package catalog

import (
	"context"
	"sync"

	"github.com/vendimax/backend-vendi/internal/money"
)

// Store is the catalog persistence contract. The machine keeps stock in
// memory; anything honouring this contract can replace it.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id ProductID) (Product, error)
	Save(ctx context.Context, p Product) error
}

// MemoryStore holds products in memory behind a read-write mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
}

// NewMemoryStore constructs a store with the given products.
func NewMemoryStore(products []Product) *MemoryStore {
	return &MemoryStore{products: append([]Product(nil), products...)}
}

// DefaultProducts returns the stock the machine is seeded with.
func DefaultProducts() []Product {
	return []Product{
		{ID: "COCACOLA", Name: "Coca Cola", Price: money.MustNew(800), Quantity: 10},
		{ID: "PEPSI", Name: "Pepsi", Price: money.MustNew(750), Quantity: 8},
		{ID: "FANTA", Name: "Fanta", Price: money.MustNew(950), Quantity: 10},
		{ID: "SPRITE", Name: "Sprite", Price: money.MustNew(975), Quantity: 15},
	}
}

// List returns a copy of all products.
func (s *MemoryStore) List(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.products...), nil
}

// Get returns the product with the given id.
func (s *MemoryStore) Get(_ context.Context, id ProductID) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Save replaces the stored product with the same id.
func (s *MemoryStore) Save(_ context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return nil
		}
	}
	return ErrProductNotFound
}
