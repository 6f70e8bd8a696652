package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_connections",
		Help: "Number of currently connected websocket clients",
	})

	framesRelayedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_frames_relayed_total",
		Help: "Total number of frames relayed between room participants, by type",
	}, []string{"type"})

	matchNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_match_notifications_total",
		Help: "Total number of match notifications pushed over websocket",
	})
)

func SetActiveConnections(n int) {
	activeConnections.Set(float64(n))
}

func RecordFrameRelayed(frameType string) {
	framesRelayedTotal.WithLabelValues(frameType).Inc()
}

func RecordMatchNotification() {
	matchNotificationsTotal.Inc()
}
