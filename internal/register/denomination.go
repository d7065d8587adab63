package register

import "github.com/vendimax/backend-vendi/internal/money"

// Denomination is one fixed coin or bill face value recognised by the
// machine. The numeric value is the face value in base currency units.
type Denomination int64

const (
	Coin25   Denomination = 25
	Coin50   Denomination = 50
	Coin100  Denomination = 100
	Coin500  Denomination = 500
	Bill1000 Denomination = 1000
)

// All lists every supported denomination in descending face value.
var All = []Denomination{Bill1000, Coin500, Coin100, Coin50, Coin25}

// ChangeOrder is the greedy traversal order for making change. The 1000
// bill is accepted as payment but never dispensed.
var ChangeOrder = []Denomination{Coin500, Coin100, Coin50, Coin25}

// Value returns the face value as Money.
func (d Denomination) Value() money.Money {
	return money.MustNew(int64(d))
}

// Name returns the wire name used by external callers, e.g. "Coin500".
func (d Denomination) Name() string {
	switch d {
	case Coin25:
		return "Coin25"
	case Coin50:
		return "Coin50"
	case Coin100:
		return "Coin100"
	case Coin500:
		return "Coin500"
	case Bill1000:
		return "Bill1000"
	}
	return "Unknown"
}

// Parse maps a wire name back to a denomination. Unknown names report false.
func Parse(name string) (Denomination, bool) {
	switch name {
	case "Coin25":
		return Coin25, true
	case "Coin50":
		return Coin50, true
	case "Coin100":
		return Coin100, true
	case "Coin500":
		return Coin500, true
	case "Bill1000":
		return Bill1000, true
	}
	return 0, false
}
