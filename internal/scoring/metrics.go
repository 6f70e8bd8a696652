package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	qcsComputesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_qcs_computes_total",
			Help: "Total number of QCS computations",
		},
	)

	qcsTotals = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_qcs_totals",
			Help:    "Distribution of total QCS scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	pairScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_pair_scores",
			Help:    "Distribution of pairwise compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func RecordQCSTotal(total int) {
	qcsComputesTotal.Inc()
	qcsTotals.Observe(float64(total))
}

func RecordPairScore(score float64) {
	pairScores.Observe(score)
}
