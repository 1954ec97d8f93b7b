package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resultSize records how many vendors each ranking call returned, by strategy.
	resultSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "curbcompanion_ranking_results",
		Help:    "Number of vendors returned per ranking call, by strategy.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"strategy"})

	// candidatesDiscarded counts store candidates dropped by the in-process filters.
	candidatesDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curbcompanion_ranking_candidates_discarded_total",
		Help: "Store candidates discarded by the ranking filters, by reason.",
	}, []string{"reason"})
)
