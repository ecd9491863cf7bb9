package service

import (
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotaShiftAndNote(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Rota

	day, err := svc.SetNote(ctx, "2026-03-04", "dentist")
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftType(""), day.Type)

	day, err = svc.SetShift(ctx, "2026-03-04", entity.ShiftOTDay)
	require.NoError(t, err)
	assert.Equal(t, "dentist", day.Note)

	day, err = svc.SetHours(ctx, "2026-03-04", 6)
	require.NoError(t, err)
	assert.Equal(t, 6.0, day.Hours)

	// switching to a non-overtime type drops the hours, keeps the note
	day, err = svc.SetShift(ctx, "2026-03-04", entity.ShiftHoliday)
	require.NoError(t, err)
	assert.Zero(t, day.Hours)
	assert.Equal(t, "dentist", day.Note)

	_, err = svc.SetShift(ctx, "2026-03-04", "Lunch")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SetNote(ctx, "04/03/2026", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRotaHoursClampAtZero(t *testing.T) {
	env := setupServices(t)
	day, err := env.svcs.Rota.SetHours(ctx, "2026-03-05", -4)
	require.NoError(t, err)
	assert.Zero(t, day.Hours)
}

func TestRotaMonthAndOvertime(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Rota
	for date, shift := range map[string]entity.ShiftType{
		"2026-03-01": entity.ShiftOTDay,
		"2026-03-15": entity.ShiftOTNight,
		"2026-03-20": entity.ShiftDay,
		"2026-04-01": entity.ShiftOTDay,
	} {
		_, err := svc.SetShift(ctx, date, shift)
		require.NoError(t, err)
		_, err = svc.SetHours(ctx, date, 4)
		require.NoError(t, err)
	}

	month, err := svc.Month(ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, month.Days, 3)
	assert.Equal(t, "2026-03-01", month.Days[0].Date)
	assert.Equal(t, "2026-03-20", month.Days[2].Date)

	hours, err := svc.MonthlyOTHours(ctx, 2026, 3)
	require.NoError(t, err)
	// the Day shift on the 20th carries hours but is not overtime
	assert.Equal(t, 8.0, hours)

	_, err = svc.Month(ctx, 2026, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRotaDelete(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Rota
	_, err := svc.SetShift(ctx, "2026-03-01", entity.ShiftNight)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "2026-03-01"))
	assert.ErrorIs(t, svc.Delete(ctx, "2026-03-01"), ErrNotFound)
}
