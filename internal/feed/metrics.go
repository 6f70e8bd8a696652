package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed pages served",
		},
	)

	feedPageSizes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_page_sizes",
			Help:    "Distribution of served feed page sizes",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)
)

func RecordFeedServed(size int) {
	feedRequestsTotal.Inc()
	feedPageSizes.Observe(float64(size))
}
