package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PaymentTotal counts payment outcomes by result label.
	PaymentTotal *prometheus.CounterVec
	// PaymentOutOfServiceTotal counts transactions rejected because exact
	// change could not be composed.
	PaymentOutOfServiceTotal prometheus.Counter
	// ChangeDispensedTotal counts dispensed units by denomination.
	ChangeDispensedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PaymentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_total",
			Help:      "Count of processed payments by outcome.",
		}, []string{"result"})
		PaymentOutOfServiceTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_out_of_service_total",
			Help:      "Payments rejected because exact change was not available.",
		})
		ChangeDispensedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_dispensed_total",
			Help:      "Units of change dispensed by denomination.",
		}, []string{"denomination"})

		mustRegisterCollector(reg, PaymentTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PaymentTotal = v
			}
		})
		mustRegisterCollector(reg, PaymentOutOfServiceTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PaymentOutOfServiceTotal = v
			}
		})
		mustRegisterCollector(reg, ChangeDispensedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ChangeDispensedTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, c prometheus.Collector, replace func(prometheus.Collector)) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			replace(are.ExistingCollector)
			return
		}
		panic(err)
	}
}
