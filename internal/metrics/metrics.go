package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ventas",
		Name:      "checkout_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"}) // ok | already_purchased | out_of_stock | error

	LoginFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ventas",
		Name:      "login_failures_total",
		Help:      "Rejected authentication attempts.",
	})

	OrdersRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ventas",
		Name:      "orders_recorded_total",
		Help:      "Orders written to the ledger.",
	})
)

func init() {
	prometheus.MustRegister(CheckoutTotal, LoginFailures, OrdersRecorded)
}

func Handler() http.Handler { return promhttp.Handler() }
