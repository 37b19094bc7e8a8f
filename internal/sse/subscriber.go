package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/Pokemonkey_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// teamVisible are the milestones streamed to team-scoped clients of other
// foresters.
var teamVisible = map[event.Type]bool{
	event.MissionCompleted: true,
	event.LevelUp:          true,
	event.SkinPurchased:    true,
}

var streamed = []event.Type{
	event.UserLoggedIn,
	event.ReportSubmitted,
	event.MissionStarted,
	event.MissionCompleted,
	event.MissionUnlocked,
	event.LevelUp,
	event.SkinPurchased,
	event.SyncFailed,
}

// Subscribe registers the bridge for every streamed event type.
func (s *Subscriber) Subscribe(bus event.Bus) {
	for _, t := range streamed {
		bus.Subscribe(t, s.handle)
	}
	slog.Info(LogMsgSubscriberReady, "types", streamed)
}

func (s *Subscriber) handle(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(evt.UserID, string(evt.Type), teamVisible[evt.Type], evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", evt.UserID)
	return nil
}
