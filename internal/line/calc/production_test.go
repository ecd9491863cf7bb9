package calc

import (
	"math"
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTable() Factors {
	return Factors(entity.DefaultConversionFactors())
}

func TestHasValidConversionFactor(t *testing.T) {
	table := defaultTable()

	assert.True(t, HasValidConversionFactor(table, 105, 120))
	assert.True(t, HasValidConversionFactor(table, 112, 124))
	assert.False(t, HasValidConversionFactor(table, 999, 999))
	assert.False(t, HasValidConversionFactor(table, 105, 124), "lookup is exact on both fields")
	assert.False(t, HasValidConversionFactor(table, 0, 120))
	assert.False(t, HasValidConversionFactor(table, 105, math.NaN()))
	assert.False(t, HasValidConversionFactor(nil, 105, 120))
}

func TestGetConversionFactor(t *testing.T) {
	factor, ok := GetConversionFactor(defaultTable(), 112, 124)
	require.True(t, ok)
	assert.Equal(t, 23.99, factor)

	_, ok = GetConversionFactor(defaultTable(), 112.5, 124)
	assert.False(t, ok)
}

func TestCalculateLogsPerMinute(t *testing.T) {
	table := defaultTable()

	got, ok := CalculateLogsPerMinute(table, 450, 105, 120)
	require.True(t, ok)
	assert.Equal(t, 19.1, got)

	got, ok = CalculateLogsPerMinute(table, 0, 105, 120)
	require.True(t, ok, "zero speed is a valid input")
	assert.Equal(t, 0.0, got)

	cases := []struct {
		name                 string
		diameter, perfLength float64
	}{
		{"missing diameter", 0, 120},
		{"missing perf length", 105, 0},
		{"unregistered pair", 999, 999},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := CalculateLogsPerMinute(table, 450, tc.diameter, tc.perfLength)
			assert.False(t, ok)
		})
	}
}

func TestCalculateRequiredSpeed(t *testing.T) {
	table := defaultTable()

	got, ok := CalculateRequiredSpeed(table, 20, 112, 124)
	require.True(t, ok)
	assert.Equal(t, 479.8, got)

	_, ok = CalculateRequiredSpeed(table, 20, 112, 0)
	assert.False(t, ok)
}

func TestRequiredSpeedRoundTrip(t *testing.T) {
	table := Factors{
		{Diameter: 105, PerfLength: 120, Factor: 23.53},
		{Diameter: 112, PerfLength: 124, Factor: 23.99},
		{Diameter: 98, PerfLength: 110, Factor: 21.7},
	}
	for _, f := range table {
		for r := 0.1; r < 40; r += 0.7 {
			speed, ok := CalculateRequiredSpeed(table, r, f.Diameter, f.PerfLength)
			require.True(t, ok)
			back, ok := CalculateLogsPerMinute(table, speed, f.Diameter, f.PerfLength)
			require.True(t, ok)
			assert.InDelta(t, r, back, 0.1+1e-9, "factor %v rate %v", f.Factor, r)
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 19.1, roundTo(450/23.53, 1))
	assert.Equal(t, 1256.63706, roundTo(1256.6370614359173, 5))
	assert.True(t, math.IsNaN(roundTo(math.NaN(), 1)))
}

func TestRoundToTiesAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.3, roundTo(1.25, 1))
	assert.Equal(t, -1.3, roundTo(-1.25, 1))
	assert.Equal(t, 0.3, roundTo(0.25, 1))
	assert.Equal(t, 3.0, roundTo(2.5, 0))
	// 2.675 and 1.005 sit just below the halfway point in binary
	assert.Equal(t, 2.67, roundTo(2.675, 2))
	assert.Equal(t, 1.0, roundTo(1.005, 2))
	assert.Equal(t, 0.0, roundTo(0.04, 1))
	assert.Equal(t, 0.05, roundTo(0.05, 2))
}

func TestHalfwayRatesRoundUp(t *testing.T) {
	per24 := Factors{{Diameter: 100, PerfLength: 100, Factor: 24}}

	got, ok := CalculateLogsPerMinute(per24, 30, 100, 100)
	require.True(t, ok)
	assert.Equal(t, 1.3, got)

	got, ok = CalculateLogsPerMinute(per24, 6, 100, 100)
	require.True(t, ok)
	assert.Equal(t, 0.3, got)

	got, ok = CalculateRequiredSpeed(Factors{{Diameter: 100, PerfLength: 100, Factor: 2.5}}, 0.5, 100, 100)
	require.True(t, ok)
	assert.Equal(t, 1.3, got)
}
