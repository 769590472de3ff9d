package metrics

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Rental aggregates the prometheus instruments for the rental ledger.
type Rental struct {
	carsAdded     prometheus.Counter
	rentalsOpened prometheus.Counter
	rentalsClosed prometheus.Counter
	depositVolume prometheus.Counter
	payouts       *prometheus.CounterVec
	payoutVolume  *prometheus.CounterVec
}

var (
	rentalOnce     sync.Once
	rentalRegistry *Rental
)

// RentalLedger returns the process-wide rental metrics registry.
func RentalLedger() *Rental {
	rentalOnce.Do(func() {
		rentalRegistry = &Rental{
			carsAdded: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rental_cars_added_total",
				Help: "Count of car listings created.",
			}),
			rentalsOpened: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rental_opened_total",
				Help: "Count of rentals opened.",
			}),
			rentalsClosed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rental_closed_total",
				Help: "Count of rentals closed by a car return.",
			}),
			depositVolume: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rental_deposit_volume_total",
				Help: "Total funds pulled into custody by rentals, commission included.",
			}),
			payouts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "rental_payouts_total",
				Help: "Count of escrow withdrawals by beneficiary kind.",
			}, []string{"kind"}),
			payoutVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "rental_payout_volume_total",
				Help: "Total funds pushed out of custody by beneficiary kind.",
			}, []string{"kind"}),
		}
		prometheus.MustRegister(
			rentalRegistry.carsAdded,
			rentalRegistry.rentalsOpened,
			rentalRegistry.rentalsClosed,
			rentalRegistry.depositVolume,
			rentalRegistry.payouts,
			rentalRegistry.payoutVolume,
		)
	})
	return rentalRegistry
}

// ObserveCarAdded records a new listing.
func (m *Rental) ObserveCarAdded() {
	if m == nil {
		return
	}
	m.carsAdded.Inc()
}

// ObserveRental records an opened rental and the custody inflow.
func (m *Rental) ObserveRental(total *big.Int) {
	if m == nil {
		return
	}
	m.rentalsOpened.Inc()
	m.depositVolume.Add(bigFloat(total))
}

// ObserveReturn records a closed rental.
func (m *Rental) ObserveReturn() {
	if m == nil {
		return
	}
	m.rentalsClosed.Inc()
}

// ObservePayout records an escrow withdrawal for the given beneficiary kind.
func (m *Rental) ObservePayout(kind string, amount *big.Int) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.payouts.WithLabelValues(kind).Inc()
	m.payoutVolume.WithLabelValues(kind).Add(bigFloat(amount))
}

func bigFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
