package register_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vendimax/backend-vendi/internal/money"
	"github.com/vendimax/backend-vendi/internal/register"
)

func TestSlotAddAndRemove(t *testing.T) {
	slot, err := register.NewSlot(register.Coin100, 5)
	require.NoError(t, err)

	require.ErrorIs(t, slot.AddUnits(-1), register.ErrNegativeQuantity)
	require.NoError(t, slot.AddUnits(3))
	require.Equal(t, 8, slot.Quantity())
	require.Equal(t, int64(800), slot.TotalValue().Amount())

	ok, err := slot.TryRemoveUnits(8)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, slot.Quantity())

	ok, err = slot.TryRemoveUnits(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, slot.Quantity())

	_, err = slot.TryRemoveUnits(-2)
	require.ErrorIs(t, err, register.ErrNegativeQuantity)
}

func TestDepositDispenseSymmetry(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())
	before := reg.Quantity(register.Coin50)

	require.NoError(t, reg.Deposit(register.Coin50, 4))
	require.Equal(t, before+4, reg.Quantity(register.Coin50))

	require.NoError(t, reg.Dispense(map[register.Denomination]int{register.Coin50: 4}))
	require.Equal(t, before, reg.Quantity(register.Coin50))
}

func TestChangeDue(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())

	change, err := reg.ChangeDue(money.MustNew(1000), money.MustNew(800))
	require.NoError(t, err)
	require.Equal(t, int64(200), change.Amount())

	change, err = reg.ChangeDue(money.MustNew(800), money.MustNew(800))
	require.NoError(t, err)
	require.True(t, change.IsZero())

	_, err = reg.ChangeDue(money.MustNew(500), money.MustNew(800))
	require.ErrorIs(t, err, register.ErrInsufficientPayment)
}

func TestPlanChangeGreedyOrder(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())

	breakdown, err := reg.PlanChange(money.MustNew(650))
	require.NoError(t, err)
	require.Equal(t, map[register.Denomination]int{
		register.Coin500: 1,
		register.Coin100: 1,
		register.Coin50:  1,
	}, breakdown)
}

func TestPlanChangeIsDeterministicAndPure(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())
	amount := money.MustNew(1375)

	first, err := reg.PlanChange(amount)
	require.NoError(t, err)
	second, err := reg.PlanChange(amount)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var total int64
	for d, count := range first {
		total += int64(d) * int64(count)
	}
	require.Equal(t, amount.Amount(), total)

	// Planning must not touch inventory.
	for _, st := range reg.Snapshot() {
		require.Equal(t, register.DefaultSeed()[st.Denomination], st.Quantity)
	}
}

func TestPlanChangeFallsBackToSmallerDenominations(t *testing.T) {
	reg := register.MustNew(map[register.Denomination]int{
		register.Coin500: 1,
		register.Coin100: 0,
		register.Coin50:  2,
		register.Coin25:  4,
	})

	breakdown, err := reg.PlanChange(money.MustNew(700))
	require.NoError(t, err)
	require.Equal(t, map[register.Denomination]int{
		register.Coin500: 1,
		register.Coin50:  2,
		register.Coin25:  4,
	}, breakdown)
}

func TestPlanChangeNotRepresentable(t *testing.T) {
	reg := register.MustNew(map[register.Denomination]int{
		register.Coin500: 10,
		register.Coin100: 10,
	})

	_, err := reg.PlanChange(money.MustNew(25))
	require.ErrorIs(t, err, register.ErrChangeNotRepresentable)
	require.False(t, reg.CanMakeChange(money.MustNew(25)))
	require.True(t, reg.IsOutOfService(money.MustNew(25)))

	// The bill is never used for change even when stocked.
	reg2 := register.MustNew(map[register.Denomination]int{register.Bill1000: 5})
	_, err = reg2.PlanChange(money.MustNew(1000))
	require.ErrorIs(t, err, register.ErrChangeNotRepresentable)
}

func TestCanMakeChangeProbeIsIdempotent(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())
	amount := money.MustNew(225)

	require.Equal(t, reg.CanMakeChange(amount), reg.CanMakeChange(amount))
	for _, st := range reg.Snapshot() {
		require.Equal(t, register.DefaultSeed()[st.Denomination], st.Quantity)
	}
}

func TestIsOutOfServiceZeroChange(t *testing.T) {
	reg := register.MustNew(map[register.Denomination]int{})
	require.False(t, reg.IsOutOfService(money.Zero()))
}

func TestDispenseRestoresOnShortfall(t *testing.T) {
	reg := register.MustNew(map[register.Denomination]int{
		register.Coin500: 2,
		register.Coin100: 1,
	})

	err := reg.Dispense(map[register.Denomination]int{
		register.Coin500: 1,
		register.Coin100: 3,
	})
	require.ErrorIs(t, err, register.ErrInsufficientInventory)

	// A failed dispense must not be observable as partially done.
	require.Equal(t, 2, reg.Quantity(register.Coin500))
	require.Equal(t, 1, reg.Quantity(register.Coin100))
}

func TestDepositUnsupportedDenomination(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())
	err := reg.Deposit(register.Denomination(10), 1)
	require.ErrorIs(t, err, register.ErrUnsupportedDenomination)
}

func TestSnapshotOrderedByDescendingValue(t *testing.T) {
	reg := register.MustNew(register.DefaultSeed())
	snap := reg.Snapshot()
	require.Len(t, snap, 5)
	for i := 1; i < len(snap); i++ {
		require.Greater(t, snap[i-1].UnitValue.Amount(), snap[i].UnitValue.Amount())
	}
	require.Equal(t, register.Bill1000, snap[0].Denomination)
	require.Equal(t, int64(3000), snap[2].TotalValue.Amount()) // 30 × 100
}

func TestDenominationNames(t *testing.T) {
	for _, d := range register.All {
		parsed, ok := register.Parse(d.Name())
		require.True(t, ok)
		require.Equal(t, d, parsed)
	}
	_, ok := register.Parse("Coin10")
	require.False(t, ok)
}
