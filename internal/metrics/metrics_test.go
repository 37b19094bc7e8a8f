package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Pokemonkey_Go/internal/event"
)

func TestEventMetricsCollector_RecordsBusinessMetrics(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	beforeHari := testutil.ToFloat64(ReportsSubmitted.WithLabelValues("hari"))
	beforeXP := testutil.ToFloat64(XPAwarded)
	beforeMission := testutil.ToFloat64(MissionsCompleted.WithLabelValues("m1"))
	beforeLevel := testutil.ToFloat64(LevelUps)
	beforeSkin := testutil.ToFloat64(SkinsPurchased.WithLabelValues("ranger"))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewReportSubmittedEvent("siti", event.ReportSubmittedPayloadV1{Unit: "hari", XPGained: 666})))
	require.NoError(t, bus.Publish(ctx, event.NewMissionCompletedEvent("siti", "Siti", "m1", "Land")))
	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("siti", "Siti", 1, 2, 1166)))
	require.NoError(t, bus.Publish(ctx, event.NewSkinPurchasedEvent("siti", "ranger", "Jagawana", 3000)))

	assert.Equal(t, beforeHari+1, testutil.ToFloat64(ReportsSubmitted.WithLabelValues("hari")))
	assert.Equal(t, beforeXP+666, testutil.ToFloat64(XPAwarded))
	assert.Equal(t, beforeMission+1, testutil.ToFloat64(MissionsCompleted.WithLabelValues("m1")))
	assert.Equal(t, beforeLevel+1, testutil.ToFloat64(LevelUps))
	assert.Equal(t, beforeSkin+1, testutil.ToFloat64(SkinsPurchased.WithLabelValues("ranger")))
}

func TestEventMetricsCollector_IgnoresBadPayload(t *testing.T) {
	c := NewEventMetricsCollector()
	err := c.HandleEvent(context.Background(), event.Event{Type: event.ReportSubmitted, Payload: make(chan int)})
	assert.NoError(t, err)
}

func TestRecordSync(t *testing.T) {
	before := testutil.ToFloat64(SyncPushes.WithLabelValues("updateProgress", OutcomeStale))
	RecordSync("updateProgress", OutcomeStale)
	assert.Equal(t, before+1, testutil.ToFloat64(SyncPushes.WithLabelValues("updateProgress", OutcomeStale)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Post("/api/v1/me/missions/{id}/start", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/me/missions/{id}/start", "409")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/me/missions/m1/start", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, 0.0, testutil.ToFloat64(HTTPRequestsInFlight))
}
