// Package metrics holds the process-wide Prometheus collectors. They are
// registered on the default registry; the HTTP adapter exposes them on
// /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Resolutions counts applied utterances by engine and outcome
	// (advanced, unresolved, reset).
	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parley_resolutions_total",
			Help: "Total utterances applied, by engine and outcome",
		},
		[]string{"engine", "outcome"},
	)

	// OrdersPlaced counts orders appended to the ledger.
	OrdersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "parley_orders_placed_total",
			Help: "Total orders placed",
		},
	)

	// OrderValue observes the total of each placed order.
	OrderValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parley_order_value",
			Help:    "Distribution of order totals",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(Resolutions, OrdersPlaced, OrderValue)
}
