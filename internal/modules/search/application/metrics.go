package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matcherCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcher_cycles_total",
		Help: "Total number of saved-search matcher cycles started.",
	})

	matcherCyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcher_cycles_skipped_total",
		Help: "Cycles skipped because the previous cycle was still running.",
	})

	searchesEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcher_searches_evaluated_total",
		Help: "Saved-search evaluations by outcome.",
	}, []string{"status"})

	notificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matcher_notifications_sent_total",
		Help: "Notifications emitted by the matcher, by type.",
	}, []string{"type"})

	malformedPrices = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matcher_malformed_prices_total",
		Help: "Properties excluded from price-bounded searches because their price did not parse.",
	})
)
