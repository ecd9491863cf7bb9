package service

import (
	"context"
	"testing"
	"time"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/bitfantasy/linedash/internal/line/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwindUpdateAndSnapshot(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Unwind

	u, err := svc.Update(ctx, entity.Unwind1, &UnwindInput{
		Diameter: ptr(500.0), EndDiameter: ptr(100.0), BreakDiameter: ptr(300.0),
		Speed: ptr(50.0), Bulk: ptr(0.15),
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, u.Diameter)

	_, err = svc.Update(ctx, entity.Unwind2, &UnwindInput{Diameter: ptr(500.0), EndDiameter: ptr(100.0), Speed: ptr(50.0), Bulk: ptr(0.15), IsTwoPly: ptr(true)})
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	snaps, err := svc.Snapshot(ctx, now)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	first := snaps[0]
	assert.Equal(t, 25.0, first.Runtime)
	assert.Equal(t, "00:25:00", first.RuntimeText)
	require.NotNil(t, first.ExpiryTime)
	assert.Equal(t, now.Add(25*time.Minute), *first.ExpiryTime)
	assert.InDelta(t, 1256.63706, first.Length, 1e-9)
	assert.Greater(t, first.RuntimeToBreak, 0.0)
	assert.Less(t, first.RuntimeToBreak, first.Runtime)
	require.NotNil(t, first.BreakTime)
	assert.Equal(t, now.Add(time.Duration(first.RuntimeToBreak)*time.Minute), *first.BreakTime)

	assert.Equal(t, 13.0, snaps[1].Runtime)
	assert.Zero(t, snaps[1].RuntimeToBreak)
}

func TestSnapshotOmitsUnrepresentableExpiry(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Unwind

	// a near-zero bulk winds billions of minutes of material
	_, err := svc.Update(ctx, entity.Unwind1, &UnwindInput{
		Diameter: ptr(3000.0), EndDiameter: ptr(100.0), Speed: ptr(1.0), Bulk: ptr(1e-6),
	})
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	snaps, err := svc.Snapshot(ctx, now)
	require.NoError(t, err)
	first := snaps[0]
	assert.Greater(t, first.Runtime, maxOffsetMinutes)
	assert.Nil(t, first.ExpiryTime)
	// no break diameter, so the break is now
	require.NotNil(t, first.BreakTime)
	assert.Equal(t, now, *first.BreakTime)
}

func TestUnwindUpdateValidation(t *testing.T) {
	env := setupServices(t)
	_, err := env.svcs.Unwind.Update(ctx, 3, &UnwindInput{Diameter: ptr(1.0)})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = env.svcs.Unwind.Update(ctx, entity.Unwind1, &UnwindInput{Speed: ptr(-5.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncPaperMachines(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Unwind

	// no active product, nothing to sync
	require.NoError(t, svc.SyncPaperMachines(ctx))

	p, err := env.svcs.Product.AddProduct(ctx, "waitrose-premium", &ProductInput{Name: ptr("Premium")})
	require.NoError(t, err)
	_, err = env.svcs.Product.SetActive(ctx, "waitrose-premium", p.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, entity.Unwind1, &UnwindInput{PaperMachine: ptr("TM5")})
	require.NoError(t, err)
	snaps, err := svc.Snapshot(ctx, time.Now())
	require.NoError(t, err)
	assert.True(t, snaps[0].PaperMachineMismatch)
	assert.Equal(t, "PM3", snaps[0].ExpectedPaperMachine)
	assert.False(t, snaps[1].PaperMachineMismatch)

	require.NoError(t, svc.SyncPaperMachines(ctx))
	unwinds, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PM3", unwinds[0].PaperMachine)
	assert.Equal(t, "PM3", unwinds[1].PaperMachine)
}

func TestUnwindRunBroadcasts(t *testing.T) {
	env := setupServices(t)
	events := make(chan sse.Event, 8)
	env.hub.Register(&sse.Client{ID: "watcher", Events: events})

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		env.svcs.Unwind.Run(runCtx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventUnwinds, ev.EventType)
		assert.Contains(t, ev.Data, `"runtime_text"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no unwind snapshot broadcast")
	}
	cancel()
	<-done
}
