package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameReportsSubmitted  = "reports_submitted_total"
	MetricNameXPAwarded         = "xp_awarded_total"
	MetricNameMissionsCompleted = "missions_completed_total"
	MetricNameLevelUps          = "level_ups_total"
	MetricNameSkinsPurchased    = "skins_purchased_total"
	MetricNameSyncPushes        = "cloud_sync_pushes_total"
	MetricNameActiveSessions    = "active_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextEventsPublished      = "Total number of events published"
	HelpTextReportsSubmitted     = "Total number of field reports accepted, by unit"
	HelpTextXPAwarded            = "Total XP awarded for field reports"
	HelpTextMissionsCompleted    = "Total number of missions completed, by mission"
	HelpTextLevelUps             = "Total number of level ups"
	HelpTextSkinsPurchased       = "Total number of skins bought, by skin"
	HelpTextSyncPushes           = "Cloud pushes by action and outcome"
	HelpTextActiveSessions       = "Number of foresters with a loaded session"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelUnit    = "unit"
	LabelMission = "mission"
	LabelSkin    = "skin"
	LabelAction  = "action"
	LabelOutcome = "outcome"
)

// Sync outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeStale   = "stale"
)

// unmatchedRoute labels requests that did not hit a registered route.
const unmatchedRoute = "unmatched"

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
