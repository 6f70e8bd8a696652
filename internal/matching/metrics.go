package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_swipes_total",
		Help: "Total number of swipes recorded, by direction",
	}, []string{"direction"})

	duplicateSwipesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_duplicate_swipes_total",
		Help: "Total number of swipe submissions that were already recorded",
	})

	matchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_matches_total",
		Help: "Total number of matches created",
	})

	matchRaceLostTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_match_race_lost_total",
		Help: "Total number of match inserts that lost to a concurrent reciprocal swipe",
	})

	quotaExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_swipe_quota_exhausted_total",
		Help: "Total number of swipes rejected by the daily quota",
	})
)

func RecordSwipe(direction string) {
	swipesTotal.WithLabelValues(direction).Inc()
}

func RecordDuplicateSwipe() {
	duplicateSwipesTotal.Inc()
}

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordMatchRaceLost() {
	matchRaceLostTotal.Inc()
}

func RecordQuotaExhausted() {
	quotaExhaustedTotal.Inc()
}
