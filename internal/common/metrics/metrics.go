package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_notifications_created_total",
			Help: "Total number of notifications built by the factory",
		},
		[]string{"stage"},
	)

	ChannelSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_channel_sends_total",
			Help: "Total number of channel delivery attempts by outcome",
		},
		[]string{"channel", "status"},
	)

	FanOutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "notifier_fanout_duration_seconds",
			Help: "Duration of a full fan-out in seconds",
		},
		[]string{"stage"},
	)

	UnreadCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_unread_cache_requests_total",
			Help: "Unread badge cache lookups by result",
		},
		[]string{"result"},
	)
)
