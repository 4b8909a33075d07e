// Package metrics exposes the engine's Prometheus counters. Serving them
// over a scrape endpoint is left to the embedding process.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector holds the engine counters, registered against the registry
// passed to New.
type Collector struct {
	OrdersSubmitted prometheus.Counter
	CancelRequests  prometheus.Counter
	TradesExecuted  prometheus.Counter
	NotionalTraded  prometheus.Counter
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		OrdersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchbook_orders_submitted_total",
			Help: "Orders accepted by the engine.",
		}),
		CancelRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchbook_cancel_requests_total",
			Help: "Cancel requests received, including silent no-ops.",
		}),
		TradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchbook_trades_executed_total",
			Help: "Fills produced by the matching loop.",
		}),
		NotionalTraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchbook_notional_traded_total",
			Help: "Total traded notional (quantity times maker price).",
		}),
	}
	reg.MustRegister(c.OrdersSubmitted, c.CancelRequests, c.TradesExecuted, c.NotionalTraded)
	return c
}
