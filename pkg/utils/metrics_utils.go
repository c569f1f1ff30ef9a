package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters exposed on /metrics.
var (
	CheckInsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playground_checkins_total",
		Help: "Number of visitor check-ins since process start.",
	})

	TransactionsFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playground_transactions_finalized_total",
		Help: "Number of checkout transactions finalized since process start.",
	})

	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playground_revenue_rupiah_total",
		Help: "Revenue in rupiah collected since process start.",
	})
)
