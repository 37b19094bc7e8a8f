package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ReportsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportsSubmitted,
			Help: HelpTextReportsSubmitted,
		},
		[]string{LabelUnit},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)

	MissionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionsCompleted,
			Help: HelpTextMissionsCompleted,
		},
		[]string{LabelMission},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	SkinsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSkinsPurchased,
			Help: HelpTextSkinsPurchased,
		},
		[]string{LabelSkin},
	)

	SyncPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncPushes,
			Help: HelpTextSyncPushes,
		},
		[]string{LabelAction, LabelOutcome},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)
)

// RecordSync counts one cloud push.
func RecordSync(action, outcome string) {
	SyncPushes.WithLabelValues(action, outcome).Inc()
}
