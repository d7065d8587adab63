package register

import "github.com/vendimax/backend-vendi/internal/money"

// Slot tracks how many physical units of one denomination are on hand.
// Quantity never goes negative; there is no upper bound.
type Slot struct {
	denom Denomination
	qty   int
}

// NewSlot constructs a slot with a non-negative seed quantity.
func NewSlot(denom Denomination, qty int) (*Slot, error) {
	if qty < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Slot{denom: denom, qty: qty}, nil
}

// Denomination returns the denomination this slot holds.
func (s *Slot) Denomination() Denomination { return s.denom }

// Quantity returns the number of units on hand.
func (s *Slot) Quantity() int { return s.qty }

// AddUnits increases the quantity by n.
func (s *Slot) AddUnits(n int) error {
	if n < 0 {
		return ErrNegativeQuantity
	}
	s.qty += n
	return nil
}

// TryRemoveUnits decreases the quantity by n when enough units are on
// hand, reporting whether the removal happened. Insufficient stock is an
// expected condition, not an error.
func (s *Slot) TryRemoveUnits(n int) (bool, error) {
	if n < 0 {
		return false, ErrNegativeQuantity
	}
	if s.qty < n {
		return false, nil
	}
	s.qty -= n
	return true, nil
}

// TotalValue returns face value times quantity.
func (s *Slot) TotalValue() money.Money {
	return s.denom.Value().Mul(int64(s.qty))
}
