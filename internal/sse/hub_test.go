package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Pokemonkey_Go/internal/event"
	"github.com/osse101/Pokemonkey_Go/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		t.Fatalf("unexpected event %s for %s", e.Type, c.UserID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_RoutesByUserAndScope(t *testing.T) {
	hub := startHub(t)
	siti := hub.Register("siti", ScopeSelf, nil)
	budi := hub.Register("budi", ScopeSelf, nil)
	rina := hub.Register("rina", ScopeTeam, nil)

	hub.Broadcast("siti", string(event.ReportSubmitted), false, map[string]int{"xp": 520})

	got := receive(t, siti)
	assert.Equal(t, "report.submitted", got.Type)
	assert.Equal(t, "siti", got.UserID)
	assertNothing(t, budi)
	assertNothing(t, rina)

	hub.Broadcast("siti", string(event.MissionCompleted), true, nil)
	assert.Equal(t, "mission.completed", receive(t, siti).Type)
	assert.Equal(t, "mission.completed", receive(t, rina).Type, "team scope sees milestones")
	assertNothing(t, budi)
}

func TestHub_EventFilter(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("siti", "", []string{"user.level_up"})
	assert.Equal(t, ScopeSelf, c.Scope)

	hub.Broadcast("siti", "report.submitted", false, nil)
	hub.Broadcast("siti", "user.level_up", true, nil)

	assert.Equal(t, "user.level_up", receive(t, c).Type)
	assertNothing(t, c)
}

func TestHub_UnregisterAndStop(t *testing.T) {
	hub := NewHub()
	hub.Start()

	a := hub.Register("siti", ScopeSelf, nil)
	b := hub.Register("budi", ScopeSelf, nil)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(a.ID)
	_, ok := <-a.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Stop()
	_, ok = <-b.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())

	late := hub.Register("rina", ScopeSelf, nil)
	_, ok = <-late.EventChannel
	assert.False(t, ok, "registering after stop yields a closed stream")
	assert.NotPanics(t, hub.Stop)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "e1", Type: "user.level_up", UserID: "siti", Timestamp: 1, Payload: map[string]int{"newLevel": 4}})
	require.NoError(t, err)

	lines := strings.Split(string(msg), "\n")
	assert.Equal(t, "id: e1", lines[0])
	assert.Equal(t, "event: user.level_up", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "data: {"))
	assert.Contains(t, lines[2], `"newLevel":4`)
	assert.True(t, strings.HasSuffix(string(msg), "\n\n"))

	msg, err = FormatSSEMessage(Event{Type: EventTypeKeepalive})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "event: keepalive\n"))
}

func TestSubscriber_BridgesBus(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub).Subscribe(bus)

	self := hub.Register("siti", ScopeSelf, nil)
	team := hub.Register("budi", ScopeTeam, nil)

	require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent("siti", "Siti Aminah", 2, 3, 2100)))

	got := receive(t, self)
	assert.Equal(t, string(event.LevelUp), got.Type)
	assert.IsType(t, event.LevelUpPayloadV1{}, got.Payload)
	assert.Equal(t, string(event.LevelUp), receive(t, team).Type)

	require.NoError(t, bus.Publish(context.Background(), event.NewMissionStartedEvent("siti", "m2_1", "Persiapan")))
	assert.Equal(t, string(event.MissionStarted), receive(t, self).Type)
	assertNothing(t, team)
}

func TestHub_StopReleasesGoroutines(t *testing.T) {
	leaktest.Verify(t, func() {
		hub := NewHub()
		hub.Start()
		c := hub.Register("siti", ScopeSelf, nil)
		hub.Broadcast("siti", string(event.LevelUp), true, nil)
		receive(t, c)
		hub.Stop()
	})
}
