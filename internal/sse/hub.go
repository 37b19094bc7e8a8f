// Package sse streams a forester's live events to connected clients.
package sse

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	UserID    string `json:"userId,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
	// Team marks milestones other foresters may see.
	Team bool `json:"-"`
}

// Client is a connected stream.
type Client struct {
	ID           string
	UserID       string
	Scope        string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all event types
}

func (c *Client) wants(e Event) bool {
	if c.EventFilter != nil && !c.EventFilter[e.Type] {
		return false
	}
	if e.UserID == c.UserID {
		return true
	}
	return c.Scope == ScopeTeam && e.Team
}

// Hub fans events out to the clients that should see them.
type Hub struct {
	mu        sync.RWMutex
	clients   map[string]*Client
	closed    bool
	broadcast chan Event
	shutdown  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel, which ends their
// streams.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		h.closed = true
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(event) {
					continue
				}
				// Slow clients miss events rather than stall the hub.
				select {
				case client.EventChannel <- event:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a stream for userID. An empty eventTypes means all types.
func (h *Hub) Register(userID, scope string, eventTypes []string) *Client {
	if scope != ScopeTeam {
		scope = ScopeSelf
	}
	client := &Client{
		ID:           uuid.NewString(),
		UserID:       userID,
		Scope:        scope,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	return client
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for delivery. It never blocks; when the buffer
// is full the event is dropped.
func (h *Hub) Broadcast(userID, eventType string, team bool, payload any) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().Unix(),
		Payload:   payload,
		Team:      team,
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType, "user_id", userID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := "event: " + event.Type + "\n"
	if event.ID != "" {
		msg = "id: " + event.ID + "\n" + msg
	}
	msg += "data: " + string(data) + "\n\n"
	return []byte(msg), nil
}
