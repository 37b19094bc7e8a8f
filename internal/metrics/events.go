package metrics

import (
	"context"

	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.UserLoggedIn,
		event.ReportSubmitted,
		event.MissionStarted,
		event.MissionCompleted,
		event.MissionUnlocked,
		event.LevelUp,
		event.SkinPurchased,
		event.SyncFailed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ReportSubmitted:
		var p event.ReportSubmittedPayloadV1
		if p, err = event.DecodePayload[event.ReportSubmittedPayloadV1](evt.Payload); err == nil {
			ReportsSubmitted.WithLabelValues(p.Unit).Inc()
			XPAwarded.Add(float64(p.XPGained))
		}

	case event.MissionCompleted:
		var p event.MissionPayloadV1
		if p, err = event.DecodePayload[event.MissionPayloadV1](evt.Payload); err == nil {
			MissionsCompleted.WithLabelValues(p.MissionID).Inc()
		}

	case event.LevelUp:
		LevelUps.Inc()

	case event.SkinPurchased:
		var p event.SkinPurchasedPayloadV1
		if p, err = event.DecodePayload[event.SkinPurchasedPayloadV1](evt.Payload); err == nil {
			SkinsPurchased.WithLabelValues(p.SkinID).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
