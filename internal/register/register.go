package register

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vendimax/backend-vendi/internal/money"
)

var (
	// ErrNegativeQuantity rejects negative unit counts at the boundary.
	ErrNegativeQuantity = errors.New("register: quantity cannot be negative")
	// ErrUnsupportedDenomination is returned for denominations outside the fixed set.
	ErrUnsupportedDenomination = errors.New("register: unsupported denomination")
	// ErrInsufficientPayment guards ChangeDue against paid < cost.
	ErrInsufficientPayment = errors.New("register: insufficient payment")
	// ErrChangeNotRepresentable means current inventory cannot compose the
	// exact change; the machine is out of service for that amount.
	ErrChangeNotRepresentable = errors.New("register: change not representable with current inventory")
	// ErrInsufficientInventory is returned when a dispense finds fewer units
	// than the plan assumed.
	ErrInsufficientInventory = errors.New("register: insufficient inventory to dispense")
)

// DefaultSeed is the per-denomination quantity the machine starts with.
func DefaultSeed() map[Denomination]int {
	return map[Denomination]int{
		Coin25:   25,
		Coin50:   50,
		Coin100:  30,
		Coin500:  20,
		Bill1000: 0,
	}
}

// Register is the sole owner of physical money state. It holds exactly one
// slot per denomination; slots are never added or removed after construction.
type Register struct {
	mu    sync.Mutex
	slots map[Denomination]*Slot
}

// New constructs a register from a seed of per-denomination quantities.
// Denominations missing from the seed start empty; denominations outside
// the fixed set are rejected.
func New(seed map[Denomination]int) (*Register, error) {
	slots := make(map[Denomination]*Slot, len(All))
	for _, d := range All {
		slot, err := NewSlot(d, 0)
		if err != nil {
			return nil, err
		}
		slots[d] = slot
	}
	for d, qty := range seed {
		slot, ok := slots[d]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedDenomination, d)
		}
		if err := slot.AddUnits(qty); err != nil {
			return nil, err
		}
	}
	return &Register{slots: slots}, nil
}

// MustNew constructs a register and panics on a bad seed. For wiring and tests.
func MustNew(seed map[Denomination]int) *Register {
	r, err := New(seed)
	if err != nil {
		panic(err)
	}
	return r
}

// Deposit adds count units of a denomination to the till.
func (r *Register) Deposit(d Denomination, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[d]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedDenomination, d)
	}
	return slot.AddUnits(count)
}

// ChangeDue returns paid - cost, failing when the payment does not cover
// the cost.
func (r *Register) ChangeDue(paid, cost money.Money) (money.Money, error) {
	change, err := paid.Sub(cost)
	if err != nil {
		return money.Zero(), ErrInsufficientPayment
	}
	return change, nil
}

// PlanChange computes a greedy breakdown of the amount over the
// change-eligible denominations in strictly descending face value. For each
// denomination it takes min(needed, available) units. A remainder after the
// pass means the amount cannot be represented and the plan fails. The
// register is not mutated.
//
// The greedy pass does not backtrack: it can fail on amounts that a
// different combination could satisfy. That failure mode is part of the
// machine's observable behaviour.
func (r *Register) PlanChange(amount money.Money) (map[Denomination]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.planLocked(amount)
}

func (r *Register) planLocked(amount money.Money) (map[Denomination]int, error) {
	breakdown := make(map[Denomination]int)
	remaining := amount.Amount()
	for _, d := range ChangeOrder {
		want := int(remaining / int64(d))
		give := min(want, r.slots[d].Quantity())
		if give > 0 {
			breakdown[d] = give
			remaining -= int64(give) * int64(d)
		}
	}
	if remaining > 0 {
		return nil, ErrChangeNotRepresentable
	}
	return breakdown, nil
}

// CanMakeChange reports whether PlanChange would succeed. Pure probe.
func (r *Register) CanMakeChange(amount money.Money) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.planLocked(amount)
	return err == nil
}

// IsOutOfService reports whether change is owed and cannot be composed.
func (r *Register) IsOutOfService(amount money.Money) bool {
	return !amount.IsZero() && !r.CanMakeChange(amount)
}

// Dispense removes the planned units from the till. When any slot comes up
// short the units already removed are put back, so a failed dispense never
// leaves the register partially drained.
func (r *Register) Dispense(breakdown map[Denomination]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := make(map[Denomination]int, len(breakdown))
	for _, d := range ChangeOrder {
		count, ok := breakdown[d]
		if !ok {
			continue
		}
		slot, exists := r.slots[d]
		if !exists {
			r.restoreLocked(removed)
			return fmt.Errorf("%w: %d", ErrUnsupportedDenomination, d)
		}
		ok, err := slot.TryRemoveUnits(count)
		if err != nil {
			r.restoreLocked(removed)
			return err
		}
		if !ok {
			r.restoreLocked(removed)
			return fmt.Errorf("%w: %s", ErrInsufficientInventory, d.Name())
		}
		removed[d] = count
	}
	return nil
}

func (r *Register) restoreLocked(removed map[Denomination]int) {
	for d, count := range removed {
		_ = r.slots[d].AddUnits(count)
	}
}

// SlotStatus describes one denomination slot for reporting.
type SlotStatus struct {
	Denomination Denomination
	UnitValue    money.Money
	Quantity     int
	TotalValue   money.Money
}

// Snapshot returns the state of every slot ordered by descending face value.
func (r *Register) Snapshot() []SlotStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SlotStatus, 0, len(All))
	for _, d := range All {
		slot := r.slots[d]
		out = append(out, SlotStatus{
			Denomination: d,
			UnitValue:    d.Value(),
			Quantity:     slot.Quantity(),
			TotalValue:   slot.TotalValue(),
		})
	}
	return out
}

// Quantity returns the units on hand for one denomination.
func (r *Register) Quantity(d Denomination) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[d]
	if !ok {
		return 0
	}
	return slot.Quantity()
}
