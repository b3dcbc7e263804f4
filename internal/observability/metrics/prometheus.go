// Package metrics provides Prometheus metrics for the order lifecycle engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	OrdersPlaced        prometheus.Counter
	OrdersDiscontinued  prometheus.Counter
	OrdersVoided        prometheus.Counter
	TransitionConflicts prometheus.Counter
	ExpiredOrders       prometheus.Gauge
}

// New creates and registers all metrics
func New() *Metrics {
	m := &Metrics{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total orders saved, revisions and discontinuations included",
		}),
		OrdersDiscontinued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_discontinued_total",
			Help: "Total discontinuation orders placed",
		}),
		OrdersVoided: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_voided_total",
			Help: "Total orders voided",
		}),
		TransitionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "order_transition_conflicts_total",
			Help: "Lifecycle writes lost to a concurrent discontinuation or revision",
		}),
		ExpiredOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orders_expired",
			Help: "Orders past their auto-expire date that were never stopped",
		}),
	}

	prometheus.MustRegister(
		m.OrdersPlaced,
		m.OrdersDiscontinued,
		m.OrdersVoided,
		m.TransitionConflicts,
		m.ExpiredOrders,
	)

	return m
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
