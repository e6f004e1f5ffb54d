package archive

import "github.com/prometheus/client_golang/prometheus"

var archivedNotifications = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "royalty",
		Subsystem: "archive",
		Name:      "notifications_total",
		Help:      "Number of notifications exported to the archive",
	},
)

func init() {
	prometheus.MustRegister(archivedNotifications)
}
