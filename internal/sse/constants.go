package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50
)

// KeepaliveInterval is how often an idle stream gets a ping.
const KeepaliveInterval = 30 * time.Second

// Stream event types not coming from the bus
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Scopes a client can subscribe with
const (
	// ScopeSelf delivers only the caller's own events.
	ScopeSelf = "self"
	// ScopeTeam adds other foresters' team-visible milestones.
	ScopeTeam = "team"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)

// ErrMsgStreamingUnsupported is returned when the connection cannot flush.
const ErrMsgStreamingUnsupported = "streaming not supported"
