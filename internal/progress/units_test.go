package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Pokemonkey_Go/internal/domain"
)

func TestNormalize_ConversionTable(t *testing.T) {
	t.Run("hari", func(t *testing.T) {
		got, err := Normalize(100, UnitDay, 1.66)
		require.NoError(t, err)
		assert.Equal(t, 166.0, got)
	})

	t.Run("jam", func(t *testing.T) {
		got, err := Normalize(8, UnitHour, 1.66)
		require.NoError(t, err)
		assert.Equal(t, 1.66, got)
	})

	t.Run("meter ignores capacity", func(t *testing.T) {
		for _, capacity := range []float64{0, 1.66, 42} {
			got, err := Normalize(10000, UnitMeter, capacity)
			require.NoError(t, err)
			assert.Equal(t, 1.0, got)
		}
	})

	t.Run("orang", func(t *testing.T) {
		got, err := Normalize(10, UnitWorker, 1.66)
		require.NoError(t, err)
		assert.InDelta(t, 1.66, got, 1e-12)
	})

	t.Run("native units unchanged", func(t *testing.T) {
		for _, unit := range []UnitKind{UnitHectare, UnitSeedling} {
			got, err := Normalize(12.5, unit, 3)
			require.NoError(t, err)
			assert.Equal(t, 12.5, got)
		}
	})

	t.Run("missing capacity uses default", func(t *testing.T) {
		got, err := Normalize(100, UnitDay, 0)
		require.NoError(t, err)
		assert.Equal(t, 166.0, got)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Normalize(1, UnitKind(99), 1.66)
		assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	})
}

func TestParseUnit(t *testing.T) {
	for _, kind := range UnitKinds {
		got, err := ParseUnit(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	got, err := ParseUnit("  HARI ")
	require.NoError(t, err)
	assert.Equal(t, UnitDay, got)

	_, err = ParseUnit("acre")
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestUnitKind_JSON(t *testing.T) {
	type payload struct {
		Unit UnitKind `json:"unit"`
	}

	b, err := json.Marshal(payload{Unit: UnitWorker})
	require.NoError(t, err)
	assert.JSONEq(t, `{"unit":"orang"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"unit":"meter"}`), &p))
	assert.Equal(t, UnitMeter, p.Unit)

	assert.Error(t, json.Unmarshal([]byte(`{"unit":"mile"}`), &p))
}

func TestReportXP(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 500},
		{1, 510},
		{0.05, 500},
		{0.1, 501},
		{10 * 1.66, 666},
		{166, 2160},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReportXP(tt.value), "value %v", tt.value)
	}
}
