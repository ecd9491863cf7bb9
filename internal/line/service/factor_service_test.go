package service

import (
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorAdd(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Factor

	f, err := svc.Add(ctx, entity.ConversionFactor{Diameter: 120, PerfLength: 130, Factor: 25})
	require.NoError(t, err)
	assert.False(t, f.IsLocked)

	factors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, factors, 3)

	_, err = svc.Add(ctx, entity.ConversionFactor{Diameter: 120, PerfLength: 130, Factor: 26})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Add(ctx, entity.ConversionFactor{Diameter: 120, PerfLength: 0, Factor: 26})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFactorLockedEntriesAreProtected(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Factor

	_, err := svc.Update(ctx, 105, 120, 30)
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, svc.Delete(ctx, 105, 120), ErrLocked)

	_, err = svc.SetLocked(ctx, 105, 120, false)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 105, 120, 30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Factor)

	require.NoError(t, svc.Delete(ctx, 105, 120))
	factors, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, factors, 1)
	assert.Equal(t, 112.0, factors[0].Diameter)
}

func TestFactorMissingEntry(t *testing.T) {
	env := setupServices(t)
	_, err := env.svcs.Factor.SetLocked(ctx, 1, 2, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.svcs.Factor.Delete(ctx, 1, 2), ErrNotFound)
}

func TestFactorCalculatorEntryPoints(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Factor

	v, ok, err := svc.LogsPerMinute(ctx, 450, 105, 120)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 19.1, v)

	v, ok, err = svc.RequiredSpeed(ctx, 20, 112, 124)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 479.8, v)

	_, ok, err = svc.RequiredSpeed(ctx, 20, 112, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := svc.HasValidFactor(ctx, 105, 120)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFactorChangesAreBroadcast(t *testing.T) {
	env := setupServices(t)
	events := make(chan sse.Event, 4)
	client := registerClient(env, events)
	defer env.hub.Unregister(client)

	_, err := env.svcs.Factor.Add(ctx, entity.ConversionFactor{Diameter: 120, PerfLength: 130, Factor: 25})
	require.NoError(t, err)
	ev := <-events
	assert.Equal(t, sse.EventFactors, ev.EventType)
}
