package money

import (
	"errors"
	"strconv"
)

// Symbol prefixes formatted amounts. The machine trades in colones.
const Symbol = "₡"

// ErrNegativeAmount is returned when constructing or deriving a negative amount.
var ErrNegativeAmount = errors.New("money: amount cannot be negative")

// Money is an immutable monetary amount stored in whole base units.
type Money struct {
	amount int64
}

// New constructs a Money value, rejecting negative amounts.
func New(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount}, nil
}

// MustNew constructs a Money value and panics on negative input. For seeds and tests.
func MustNew(amount int64) Money {
	m, err := New(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero is the zero amount.
func Zero() Money { return Money{} }

// Amount returns the raw amount in base units.
func (m Money) Amount() int64 { return m.amount }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference m - other, failing when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if m.amount < other.amount {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: m.amount - other.amount}, nil
}

// Mul returns the amount multiplied by a non-negative count.
func (m Money) Mul(n int64) Money {
	return Money{amount: m.amount * n}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool { return m.amount < other.amount }

// Equal reports whether two amounts are equal.
func (m Money) Equal(other Money) bool { return m.amount == other.amount }

// Format renders the amount as the currency symbol followed by the
// thousands-grouped value, e.g. ₡1,250.
func (m Money) Format() string {
	return Symbol + group(m.amount)
}

// String implements fmt.Stringer.
func (m Money) String() string { return m.Format() }

func group(v int64) string {
	s := strconv.FormatInt(v, 10)
	n := len(s)
	if n <= 3 {
		return s
	}
	var out []byte
	head := n % 3
	if head > 0 {
		out = append(out, s[:head]...)
	}
	for i := head; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
