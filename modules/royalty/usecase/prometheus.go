package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "royalty"

// Metrics for monitoring service.
var (
	queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of royalty queries",
			Name:      "queries_total",
			Namespace: metricsNamespace,
		},
		[]string{"operation"},
	)
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of payment notifications by result",
			Name:      "notifications_total",
			Namespace: metricsNamespace,
		},
		[]string{"result"},
	)
	assetsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of created assets",
			Name:      "assets_created_total",
			Namespace: metricsNamespace,
		},
	)
	royaltyUpdates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of royalty updates",
			Name:      "royalty_updates_total",
			Namespace: metricsNamespace,
		},
	)
	subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Current number of live notification subscribers",
			Name:      "stream_subscribers",
			Namespace: metricsNamespace,
		},
	)
)

func init() {
	prometheus.MustRegister(
		queries,
		notifications,
		assetsCreated,
		royaltyUpdates,
		subscribers,
	)
}
