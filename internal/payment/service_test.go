package payment_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vendimax/backend-vendi/internal/cart"
	"github.com/vendimax/backend-vendi/internal/catalog"
	"github.com/vendimax/backend-vendi/internal/events"
	"github.com/vendimax/backend-vendi/internal/payment"
	"github.com/vendimax/backend-vendi/internal/register"
)

type captureNotifier struct {
	topics []string
}

func (c *captureNotifier) Notify(_ context.Context, ev events.Event) error {
	c.topics = append(c.topics, ev.Topic)
	return nil
}

func newService(seed map[register.Denomination]int) (*payment.Service, *catalog.MemoryStore, *captureNotifier) {
	store := catalog.NewMemoryStore(catalog.DefaultProducts())
	notifier := &captureNotifier{}
	svc := &payment.Service{
		Register: register.MustNew(seed),
		Store:    store,
		Events:   &events.Bus{Notifiers: []events.Notifier{notifier}},
		Log:      zerolog.Nop(),
	}
	return svc, store, notifier
}

func TestProcessPaymentSuccessWithChange(t *testing.T) {
	svc, store, notifier := newService(register.DefaultSeed())

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Coin500": 2},
		TotalInserted: 1000,
	}, 800, []cart.Item{{ProductID: "COCACOLA", Quantity: 1}})

	require.True(t, result.IsSuccessful)
	require.False(t, result.IsOutOfService)
	require.Equal(t, int64(1000), result.TotalPaid)
	require.Equal(t, int64(800), result.TotalCost)
	require.Equal(t, int64(200), result.ChangeAmount)
	require.Equal(t, map[string]int{"Coin100": 2}, result.ChangeBreakdown)
	require.Contains(t, result.Message, "₡200")
	require.Contains(t, result.Message, "2 x 100 coin")
	require.Empty(t, result.Errors)

	// Money in, change out.
	require.Equal(t, 22, svc.Register.Quantity(register.Coin500))
	require.Equal(t, 28, svc.Register.Quantity(register.Coin100))

	// Stock out.
	p, err := store.Get(context.Background(), "COCACOLA")
	require.NoError(t, err)
	require.Equal(t, 9, p.Quantity)

	require.Contains(t, notifier.topics, events.TopicPaymentAccepted)
}

func TestProcessPaymentExactAmount(t *testing.T) {
	svc, _, _ := newService(register.DefaultSeed())

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Coin500": 1, "Coin100": 3},
		TotalInserted: 800,
	}, 800, nil)

	require.True(t, result.IsSuccessful)
	require.Equal(t, int64(0), result.ChangeAmount)
	require.Empty(t, result.ChangeBreakdown)
	require.Equal(t, "Purchase completed successfully. No change.", result.Message)
	require.Equal(t, 21, svc.Register.Quantity(register.Coin500))
	require.Equal(t, 33, svc.Register.Quantity(register.Coin100))
}

func TestProcessPaymentInsufficient(t *testing.T) {
	svc, store, notifier := newService(register.DefaultSeed())
	before := svc.Register.Snapshot()

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Coin500": 1},
		TotalInserted: 500,
	}, 800, []cart.Item{{ProductID: "COCACOLA", Quantity: 1}})

	require.False(t, result.IsSuccessful)
	require.Equal(t, "Insufficient payment", result.Message)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "₡300")

	// Nothing was mutated.
	require.Equal(t, before, svc.Register.Snapshot())
	p, err := store.Get(context.Background(), "COCACOLA")
	require.NoError(t, err)
	require.Equal(t, 10, p.Quantity)

	require.Contains(t, notifier.topics, events.TopicPaymentRejected)
}

func TestProcessPaymentOutOfService(t *testing.T) {
	seed := map[register.Denomination]int{register.Coin25: 1}
	svc, store, notifier := newService(seed)

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Bill1000": 1},
		TotalInserted: 1000,
	}, 800, []cart.Item{{ProductID: "COCACOLA", Quantity: 1}})

	require.False(t, result.IsSuccessful)
	require.True(t, result.IsOutOfService)
	require.Equal(t, int64(200), result.ChangeAmount)
	require.Contains(t, result.Errors[0], "exact change")

	// The customer's money was not accepted.
	require.Equal(t, 0, svc.Register.Quantity(register.Bill1000))
	require.Equal(t, 1, svc.Register.Quantity(register.Coin25))
	p, err := store.Get(context.Background(), "COCACOLA")
	require.NoError(t, err)
	require.Equal(t, 10, p.Quantity)

	require.Contains(t, notifier.topics, events.TopicOutOfService)
	require.Contains(t, notifier.topics, events.TopicPaymentRejected)
}

func TestProcessPaymentNegativeInputs(t *testing.T) {
	svc, _, _ := newService(register.DefaultSeed())

	result := svc.ProcessPayment(context.Background(), payment.Insert{TotalInserted: -1}, 800, nil)
	require.False(t, result.IsSuccessful)
	require.Contains(t, result.Errors[0], "negative")

	result = svc.ProcessPayment(context.Background(), payment.Insert{TotalInserted: 100}, -5, nil)
	require.False(t, result.IsSuccessful)
	require.Contains(t, result.Errors[0], "negative")
}

func TestProcessPaymentSkipsUnknownDenominationKeys(t *testing.T) {
	svc, _, _ := newService(register.DefaultSeed())

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Coin500": 2, "Token99": 3},
		TotalInserted: 1000,
	}, 1000, nil)

	require.True(t, result.IsSuccessful)
	require.Equal(t, 22, svc.Register.Quantity(register.Coin500))
}

func TestProcessPaymentCommitStockShortage(t *testing.T) {
	svc, store, _ := newService(register.DefaultSeed())

	// A stale cart can ask for more stock than remains; the decrement is a
	// hard failure reported in the result.
	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Bill1000": 80},
		TotalInserted: 80000,
	}, 80000, []cart.Item{{ProductID: "PEPSI", Quantity: 99}})

	require.False(t, result.IsSuccessful)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "insufficient stock")

	// Stock stays untouched.
	p, err := store.Get(context.Background(), "PEPSI")
	require.NoError(t, err)
	require.Equal(t, 8, p.Quantity)
}

func TestProcessPaymentSkipsMissingCartProducts(t *testing.T) {
	svc, _, _ := newService(register.DefaultSeed())

	result := svc.ProcessPayment(context.Background(), payment.Insert{
		InsertedMoney: map[string]int{"Coin500": 2},
		TotalInserted: 1000,
	}, 1000, []cart.Item{{ProductID: "GHOST", Quantity: 1}})

	require.True(t, result.IsSuccessful)
}

func TestCashInventory(t *testing.T) {
	svc, _, _ := newService(register.DefaultSeed())

	views := svc.CashInventory()
	require.Len(t, views, 5)
	require.Equal(t, payment.SlotView{CoinType: "Bill1000", Value: 1000, Quantity: 0, TotalValue: 0}, views[0])
	require.Equal(t, payment.SlotView{CoinType: "Coin500", Value: 500, Quantity: 20, TotalValue: 10000}, views[1])
	require.Equal(t, payment.SlotView{CoinType: "Coin25", Value: 25, Quantity: 25, TotalValue: 625}, views[4])
}
