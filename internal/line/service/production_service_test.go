package service

import (
	"testing"
	"time"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 07:30 on a day shift is shift hour 3 with 30 minutes left.
var dayShiftMorning = time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local)

func TestUpdateHour(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production

	table, err := svc.UpdateHour(ctx, "table1", 3, FieldLogs, ptr(40))
	require.NoError(t, err)
	require.NotNil(t, table.HourData[3])
	assert.Equal(t, 40, *table.HourData[3].Logs)

	_, err = svc.UpdateHour(ctx, "table1", 13, FieldLogs, ptr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateHour(ctx, "table1", 3, "speed", ptr(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateHour(ctx, "nope", 3, FieldLogs, ptr(1))
	assert.ErrorIs(t, err, ErrNotFound)

	// clearing the only field drops the hour
	table, err = svc.UpdateHour(ctx, "table1", 3, FieldLogs, nil)
	require.NoError(t, err)
	assert.NotContains(t, table.HourData, 3)
}

func TestLockedHourRefusesEdits(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production

	table, err := svc.ToggleHourLock(ctx, "table2", 5)
	require.NoError(t, err)
	assert.True(t, table.IsHourLocked(5))

	_, err = svc.UpdateHour(ctx, "table2", 5, FieldTarget, ptr(44))
	assert.ErrorIs(t, err, ErrHourLocked)

	table, err = svc.ToggleHourLock(ctx, "table2", 5)
	require.NoError(t, err)
	assert.False(t, table.IsHourLocked(5))
}

func TestSetActiveTable(t *testing.T) {
	env := setupServices(t)
	tables, err := env.svcs.Production.SetActive(ctx, "table2")
	require.NoError(t, err)
	for _, tbl := range tables {
		assert.Equal(t, tbl.ID == "table2", tbl.IsActive, tbl.ID)
	}
}

func TestApplyGlobalTargetSkipsLockedHours(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production
	_, err := svc.UpdateHour(ctx, "table2", 1, FieldTarget, ptr(10))
	require.NoError(t, err)
	_, err = svc.ToggleHourLock(ctx, "table2", 1)
	require.NoError(t, err)

	table, err := svc.ApplyGlobalTarget(ctx, "table2", 45)
	require.NoError(t, err)
	assert.Equal(t, 10, *table.HourData[1].Target)
	for hour := 2; hour <= entity.ShiftHours; hour++ {
		assert.Equal(t, 45, *table.HourData[hour].Target, "hour %d", hour)
	}
}

func TestApplyOperatorTarget(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production
	_, err := svc.UpdateHour(ctx, "table3", 3, FieldTarget, ptr(100))
	require.NoError(t, err)
	_, err = svc.ToggleHourLock(ctx, "table3", 3)
	require.NoError(t, err)

	// 526 = 12*43 + 10: hours 1..10 get 44, 11 and 12 get 43
	table, err := svc.ApplyOperatorTarget(ctx, "table3", 526)
	require.NoError(t, err)
	for hour := 1; hour <= entity.ShiftHours; hour++ {
		want := 44
		switch {
		case hour == 3:
			want = 100
		case hour > 10:
			want = 43
		}
		assert.Equal(t, want, *table.HourData[hour].Target, "hour %d", hour)
	}
}

func TestResetClearsTable(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production
	_, err := svc.ApplyGlobalTarget(ctx, "table1", 40)
	require.NoError(t, err)
	_, err = svc.ToggleHourLock(ctx, "table1", 2)
	require.NoError(t, err)

	table, err := svc.Reset(ctx, "table1")
	require.NoError(t, err)
	assert.Empty(t, table.HourData)
	assert.Empty(t, table.LockedHours)
}

func TestSummary(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Production
	_, err := svc.ApplyGlobalTarget(ctx, "table1", 40)
	require.NoError(t, err)
	_, err = svc.UpdateHour(ctx, "table1", 1, FieldLogs, ptr(42))
	require.NoError(t, err)
	_, err = svc.UpdateHour(ctx, "table1", 2, FieldLogs, ptr(38))
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, "table1", dayShiftMorning)
	require.NoError(t, err)
	assert.Equal(t, 80, sum.TotalLogs)
	assert.Equal(t, 480, sum.TotalTarget)
	assert.Equal(t, 400, sum.Remaining)
	assert.Equal(t, -400, sum.Difference)
	assert.InDelta(t, 16.67, sum.Progress, 0.01)
	assert.Equal(t, 3, sum.CurrentHour)
	assert.Equal(t, "7am-8am", sum.CurrentHourLabel)
	assert.Equal(t, 40, sum.CurrentHourTarget)
	// 400 logs over hours 3..12
	assert.Equal(t, 40, sum.RequiredPerHour)
	assert.Nil(t, sum.RequiredSpeed)
}

func TestSummaryEmptyTable(t *testing.T) {
	env := setupServices(t)
	sum, err := env.svcs.Production.Summary(ctx, "table2", dayShiftMorning)
	require.NoError(t, err)
	assert.Zero(t, sum.Progress)
	assert.Zero(t, sum.Remaining)
	assert.Zero(t, sum.RequiredPerHour)
}

func TestSummaryRequiredSpeedUsesActiveProduct(t *testing.T) {
	env := setupServices(t)
	p, err := env.svcs.Product.AddProduct(ctx, "waitrose-essentials", &ProductInput{Name: ptr("Essentials 4")})
	require.NoError(t, err)
	_, err = env.svcs.Product.SetActive(ctx, "waitrose-essentials", p.ID)
	require.NoError(t, err)
	_, err = env.svcs.Production.ApplyGlobalTarget(ctx, "table1", 60)
	require.NoError(t, err)

	sum, err := env.svcs.Production.Summary(ctx, "table1", dayShiftMorning)
	require.NoError(t, err)
	// 720 logs over hours 3..12 is 72 an hour, 1.2 a minute at factor 23.53
	assert.Equal(t, 72, sum.RequiredPerHour)
	require.NotNil(t, sum.RequiredSpeed)
	assert.Equal(t, 28.2, *sum.RequiredSpeed)
}

func TestPlanHour(t *testing.T) {
	env := setupServices(t)
	p, err := env.svcs.Product.AddProduct(ctx, "waitrose-premium", &ProductInput{Name: ptr("Premium")})
	require.NoError(t, err)
	_, err = env.svcs.Product.SetActive(ctx, "waitrose-premium", p.ID)
	require.NoError(t, err)
	_, err = env.svcs.Production.UpdateLineSettings(ctx, &LineSettingsInput{LineSpeed: ptr(450.0)})
	require.NoError(t, err)
	_, err = env.svcs.Production.UpdateHour(ctx, "table1", 3, FieldTarget, ptr(40))
	require.NoError(t, err)
	_, err = env.svcs.Production.UpdateHour(ctx, "table1", 3, FieldLogs, ptr(10))
	require.NoError(t, err)

	plan, err := env.svcs.Production.Plan(ctx, "table1", dayShiftMorning)
	require.NoError(t, err)
	assert.Equal(t, 30, plan.RequiredLogs)
	assert.Equal(t, 30, plan.RemainingMinutes)
	assert.Equal(t, 1.0, plan.RequiredLogsPerMinute)
	require.NotNil(t, plan.RequiredSpeed)
	assert.Equal(t, 24.0, *plan.RequiredSpeed)
	require.NotNil(t, plan.CurrentLogsPerMinute)
	assert.Equal(t, 18.8, *plan.CurrentLogsPerMinute)
	assert.True(t, plan.OnTrack)
}

func TestLineSettings(t *testing.T) {
	env := setupServices(t)
	status, err := env.svcs.Production.UpdateLineSettings(ctx, &LineSettingsInput{
		CoreSize: ptr(40.0), RollSize: ptr(120.0), LineSpeed: ptr(400.0),
	})
	require.NoError(t, err)
	assert.InDelta(t, 480.0, status.Speeds.LogSawSpeed, 1e-9)
	assert.Equal(t, 1200.0, status.Speeds.WinderSpeed)
	assert.InDelta(t, 380.0, status.Speeds.DownstreamSpeed, 1e-9)

	_, err = env.svcs.Production.UpdateLineSettings(ctx, &LineSettingsInput{LineSpeed: ptr(-1.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	status, err = env.svcs.Production.LineStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 400.0, status.Settings.LineSpeed)
}
