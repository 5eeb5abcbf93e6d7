// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MerchantsCreated counts successful merchant registrations.
	MerchantsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payflow_merchants_created_total",
		Help: "Number of merchants registered.",
	})

	// TransactionsTotal counts finalized transactions by gateway and
	// terminal status.
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payflow_transactions_total",
		Help: "Number of finalized transactions.",
	}, []string{"gateway", "status"})

	// ChargeDuration observes gateway charge round-trip time.
	ChargeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payflow_gateway_charge_duration_seconds",
		Help:    "Latency of gateway charge calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"gateway"})
)

// Handler serves the Prometheus exposition format through fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
