package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSpeeds(t *testing.T) {
	got := CalculateSpeeds(LineSettings{LineSpeed: 400, CoreSize: 40, RollSize: 120})
	assert.InDelta(t, 480, got.LogSawSpeed, 1e-9)
	assert.InDelta(t, 1200, got.WinderSpeed, 1e-9)
	assert.InDelta(t, 380, got.DownstreamSpeed, 1e-9)

	got = CalculateSpeeds(LineSettings{LineSpeed: 400})
	assert.Zero(t, got.WinderSpeed)
}

func TestPlanHour(t *testing.T) {
	table := defaultTable()

	plan := PlanHour(table, 526, 226, 15, 450, 105, 120)
	assert.Equal(t, 300, plan.RequiredLogs)
	assert.Equal(t, 20.0, plan.RequiredLogsPerMinute)
	require.NotNil(t, plan.RequiredSpeed)
	assert.Equal(t, 470.6, *plan.RequiredSpeed)
	require.NotNil(t, plan.CurrentLogsPerMinute)
	assert.Equal(t, 19.1, *plan.CurrentLogsPerMinute)
	assert.False(t, plan.OnTrack)

	done := PlanHour(table, 526, 600, 15, 450, 105, 120)
	assert.Zero(t, done.RequiredLogs)
	require.NotNil(t, done.RequiredSpeed)
	assert.Zero(t, *done.RequiredSpeed)
	assert.True(t, done.OnTrack)

	unknown := PlanHour(table, 526, 0, 30, 450, 999, 999)
	assert.Nil(t, unknown.RequiredSpeed)
	assert.Nil(t, unknown.CurrentLogsPerMinute)
	assert.False(t, unknown.OnTrack)
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestShiftHour(t *testing.T) {
	tests := []struct {
		hour, want int
	}{
		{5, 1}, {12, 8}, {16, 12},
		{17, 1}, {23, 7},
		{0, 8}, {4, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShiftHour(at(tt.hour, 30)), "clock hour %d", tt.hour)
	}
}

func TestShiftHourLabel(t *testing.T) {
	day := at(9, 0)
	assert.Equal(t, "5am-6am", ShiftHourLabel(1, day))
	assert.Equal(t, "11am-12pm", ShiftHourLabel(7, day))
	assert.Equal(t, "12pm-1pm", ShiftHourLabel(8, day))
	assert.Equal(t, "4pm-5pm", ShiftHourLabel(12, day))

	night := at(20, 0)
	assert.Equal(t, "5pm-6pm", ShiftHourLabel(1, night))
	assert.Equal(t, "11pm-12am", ShiftHourLabel(7, night))
	assert.Equal(t, "12am-1am", ShiftHourLabel(8, night))
	assert.Equal(t, "4am-5am", ShiftHourLabel(12, night))
}

func TestRemainingMinutes(t *testing.T) {
	assert.Equal(t, 60, RemainingMinutes(at(10, 0)))
	assert.Equal(t, 15, RemainingMinutes(at(10, 45)))
}
