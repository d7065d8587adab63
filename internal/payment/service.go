package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vendimax/backend-vendi/internal/cart"
	"github.com/vendimax/backend-vendi/internal/catalog"
	"github.com/vendimax/backend-vendi/internal/events"
	"github.com/vendimax/backend-vendi/internal/money"
	"github.com/vendimax/backend-vendi/internal/obs"
	"github.com/vendimax/backend-vendi/internal/register"
)

// Insert describes the money the customer physically put into the machine.
// Keys are wire denomination names ("Coin25" ... "Bill1000").
type Insert struct {
	InsertedMoney map[string]int `json:"insertedMoney"`
	TotalInserted int64          `json:"totalInserted"`
}

// Result is the structured outcome of a payment attempt. Callers always get
// one of these; the orchestrator never lets a fault escape.
type Result struct {
	IsSuccessful    bool           `json:"isSuccessful"`
	Message         string         `json:"message"`
	TotalPaid       int64          `json:"totalPaid"`
	TotalCost       int64          `json:"totalCost"`
	ChangeAmount    int64          `json:"changeAmount"`
	ChangeBreakdown map[string]int `json:"changeBreakdown"`
	IsOutOfService  bool           `json:"isOutOfService"`
	Errors          []string       `json:"errors"`
}

// SlotView is the wire representation of one register slot.
type SlotView struct {
	CoinType   string `json:"coinType"`
	Value      int64  `json:"value"`
	Quantity   int    `json:"quantity"`
	TotalValue int64  `json:"totalValue"`
}

// Service sequences the payment protocol: sufficiency check, change
// feasibility, then the commit of money-in / stock-out / change-out.
type Service struct {
	Register *register.Register
	Store    catalog.Store
	Events   *events.Bus
	Log      zerolog.Logger

	// mu serializes the read-plan-commit sequence. Planning and dispensing
	// are not atomic on their own; two interleaved payments could both plan
	// against the same coins.
	mu sync.Mutex
}

// ProcessPayment runs the payment protocol for one transaction.
func (s *Service) ProcessPayment(ctx context.Context, insert Insert, totalCost int64, cartItems []cart.Item) Result {
	paid, err := money.New(insert.TotalInserted)
	if err != nil {
		return s.rejected(ctx, Result{
			Message:   "Error processing the payment",
			TotalPaid: insert.TotalInserted,
			TotalCost: totalCost,
			Errors:    []string{"inserted total cannot be negative"},
		}, "invalid_amount")
	}
	cost, err := money.New(totalCost)
	if err != nil {
		return s.rejected(ctx, Result{
			Message:   "Error processing the payment",
			TotalPaid: paid.Amount(),
			TotalCost: totalCost,
			Errors:    []string{"cost cannot be negative"},
		}, "invalid_amount")
	}

	if paid.LessThan(cost) {
		shortfall, _ := cost.Sub(paid)
		return s.rejected(ctx, Result{
			Message:   "Insufficient payment",
			TotalPaid: paid.Amount(),
			TotalCost: cost.Amount(),
			Errors:    []string{fmt.Sprintf("short by %s", shortfall.Format())},
		}, "insufficient_payment")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	change, err := s.Register.ChangeDue(paid, cost)
	if err != nil {
		return s.rejected(ctx, Result{
			Message:   "Error processing the payment",
			TotalPaid: paid.Amount(),
			TotalCost: cost.Amount(),
			Errors:    []string{err.Error()},
		}, "change_due")
	}

	if s.Register.IsOutOfService(change) {
		if obs.PaymentOutOfServiceTotal != nil {
			obs.PaymentOutOfServiceTotal.Inc()
		}
		s.emit(ctx, events.TopicOutOfService, map[string]any{"changeAmount": change.Amount()})
		return s.rejected(ctx, Result{
			Message:        "Unable to complete the purchase",
			IsOutOfService: true,
			TotalPaid:      paid.Amount(),
			TotalCost:      cost.Amount(),
			ChangeAmount:   change.Amount(),
			Errors:         []string{"the machine does not have enough coins to give exact change"},
		}, "out_of_service")
	}

	result, commitErr := s.commit(ctx, insert, cartItems, paid, cost, change)
	if commitErr != nil {
		return s.rejected(ctx, Result{
			Message:      "Error processing the payment",
			TotalPaid:    paid.Amount(),
			TotalCost:    cost.Amount(),
			ChangeAmount: change.Amount(),
			Errors:       []string{commitErr.Error()},
		}, "commit_failed")
	}

	if obs.PaymentTotal != nil {
		obs.PaymentTotal.WithLabelValues("accepted").Inc()
	}
	s.emit(ctx, events.TopicPaymentAccepted, map[string]any{
		"totalPaid":    result.TotalPaid,
		"totalCost":    result.TotalCost,
		"changeAmount": result.ChangeAmount,
	})
	s.Log.Info().
		Int64("total_paid", result.TotalPaid).
		Int64("total_cost", result.TotalCost).
		Int64("change_amount", result.ChangeAmount).
		Msg("payment accepted")
	return result
}

// commit performs the mutating phase: money in, stock out, change out.
// It runs under the transaction mutex; the feasibility check above has
// already passed.
func (s *Service) commit(ctx context.Context, insert Insert, cartItems []cart.Item, paid, cost, change money.Money) (Result, error) {
	for name, count := range insert.InsertedMoney {
		denom, ok := register.Parse(name)
		if !ok {
			// Unknown keys are skipped rather than failing the transaction.
			continue
		}
		if err := s.Register.Deposit(denom, count); err != nil {
			return Result{}, err
		}
	}

	if s.Store != nil {
		for _, item := range cartItems {
			id, err := catalog.NewProductID(item.ProductID)
			if err != nil {
				continue
			}
			product, err := s.Store.Get(ctx, id)
			if err != nil {
				if errors.Is(err, catalog.ErrProductNotFound) {
					continue
				}
				return Result{}, err
			}
			if err := product.DecreaseQuantity(item.Quantity); err != nil {
				return Result{}, err
			}
			if err := s.Store.Save(ctx, product); err != nil {
				return Result{}, err
			}
		}
	}

	breakdown := map[string]int{}
	if !change.IsZero() {
		plan, err := s.Register.PlanChange(change)
		if err != nil {
			return Result{}, err
		}
		if err := s.Register.Dispense(plan); err != nil {
			return Result{}, err
		}
		for denom, count := range plan {
			breakdown[denom.Name()] = count
			if obs.ChangeDispensedTotal != nil {
				obs.ChangeDispensedTotal.WithLabelValues(denom.Name()).Add(float64(count))
			}
		}
	}

	return Result{
		IsSuccessful:    true,
		Message:         successMessage(change, breakdown),
		TotalPaid:       paid.Amount(),
		TotalCost:       cost.Amount(),
		ChangeAmount:    change.Amount(),
		ChangeBreakdown: breakdown,
		Errors:          []string{},
	}, nil
}

// CashInventory reports every register slot ordered by descending value.
func (s *Service) CashInventory() []SlotView {
	snapshot := s.Register.Snapshot()
	views := make([]SlotView, 0, len(snapshot))
	for _, st := range snapshot {
		views = append(views, SlotView{
			CoinType:   st.Denomination.Name(),
			Value:      st.UnitValue.Amount(),
			Quantity:   st.Quantity,
			TotalValue: st.TotalValue.Amount(),
		})
	}
	return views
}

func (s *Service) rejected(ctx context.Context, r Result, reason string) Result {
	r.IsSuccessful = false
	if r.ChangeBreakdown == nil {
		r.ChangeBreakdown = map[string]int{}
	}
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if obs.PaymentTotal != nil {
		obs.PaymentTotal.WithLabelValues(reason).Inc()
	}
	s.emit(ctx, events.TopicPaymentRejected, map[string]any{
		"reason":    reason,
		"totalPaid": r.TotalPaid,
		"totalCost": r.TotalCost,
	})
	s.Log.Warn().
		Str("reason", reason).
		Int64("total_paid", r.TotalPaid).
		Int64("total_cost", r.TotalCost).
		Msg("payment rejected")
	return r
}

func (s *Service) emit(ctx context.Context, topic string, payload any) {
	if s.Events == nil {
		return
	}
	if _, err := s.Events.Emit(ctx, topic, payload); err != nil {
		s.Log.Error().Err(err).Str("topic", topic).Msg("emit event")
	}
}

// successMessage renders the human-readable receipt line: "no change" for
// exact payments, otherwise the change total plus one line per dispensed
// denomination in descending face value.
func successMessage(change money.Money, breakdown map[string]int) string {
	if change.IsZero() {
		return "Purchase completed successfully. No change."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your change is %s.\nBreakdown:", change.Format())

	denoms := make([]register.Denomination, 0, len(breakdown))
	for name := range breakdown {
		if d, ok := register.Parse(name); ok {
			denoms = append(denoms, d)
		}
	}
	sort.Slice(denoms, func(i, j int) bool { return denoms[i] > denoms[j] })
	for _, d := range denoms {
		count := breakdown[d.Name()]
		if count <= 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%d x %s", count, denominationLabel(d))
	}
	return b.String()
}

func denominationLabel(d register.Denomination) string {
	if d == register.Bill1000 {
		return fmt.Sprintf("%d bill", int64(d))
	}
	return fmt.Sprintf("%d coin", int64(d))
}
