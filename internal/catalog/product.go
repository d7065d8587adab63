package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vendimax/backend-vendi/internal/money"
)

var (
	// ErrEmptyProductID rejects blank identifiers.
	ErrEmptyProductID = errors.New("catalog: product id cannot be empty")
	// ErrEmptyName rejects blank product names.
	ErrEmptyName = errors.New("catalog: product name cannot be empty")
	// ErrInvalidQuantity rejects non-positive or negative quantity arguments.
	ErrInvalidQuantity = errors.New("catalog: invalid quantity")
	// ErrInsufficientStock means a decrement asked for more units than held.
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
	// ErrProductNotFound is returned by stores for unknown ids.
	ErrProductNotFound = errors.New("catalog: product not found")
)

// ProductID is a normalised product identifier: trimmed and upper-cased.
// Two ids are equal iff their normalised forms are equal.
type ProductID string

// NewProductID normalises and validates a raw identifier.
func NewProductID(raw string) (ProductID, error) {
	normalised := strings.ToUpper(strings.TrimSpace(raw))
	if normalised == "" {
		return "", ErrEmptyProductID
	}
	return ProductID(normalised), nil
}

// String returns the normalised form.
func (id ProductID) String() string { return string(id) }

// Product is a catalog entry with its price and remaining stock.
type Product struct {
	ID       ProductID
	Name     string
	Price    money.Money
	Quantity int
}

// NewProduct validates and constructs a product.
func NewProduct(id ProductID, name string, price money.Money, quantity int) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, ErrEmptyName
	}
	if quantity < 0 {
		return Product{}, ErrInvalidQuantity
	}
	return Product{ID: id, Name: name, Price: price, Quantity: quantity}, nil
}

// Available reports whether any stock remains.
func (p Product) Available() bool { return p.Quantity > 0 }

// DecreaseQuantity removes n units of stock. It refuses to go below zero:
// a shortage here means an earlier availability check was raced past.
func (p *Product) DecreaseQuantity(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if p.Quantity < n {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, p.Name, p.Quantity, n)
	}
	p.Quantity -= n
	return nil
}

// IncreaseQuantity adds n units of stock.
func (p *Product) IncreaseQuantity(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	p.Quantity += n
	return nil
}
