package repository

import (
	"context"
	"testing"

	"github.com/bitfantasy/linedash/internal/line/calc"
	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepositorySeedsFolders(t *testing.T) {
	repos := NewRepositories(NewMemoryStore(), nil)
	folders, err := repos.Product.LoadFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 3)
	assert.Equal(t, "waitrose-essentials", folders[0].ID)
	require.NotNil(t, folders[2].DefaultSettings)
	assert.Equal(t, "PM3-2PLY", folders[2].DefaultSettings.TissueMachine.Unwind1)
}

func TestProductRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewMemoryStore(), nil)
	folders := []entity.ProductFolder{{ID: "custom", Name: "Custom"}}
	require.NoError(t, repos.Product.SaveFolders(ctx, folders))

	got, err := repos.Product.LoadFolders(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "custom", got[0].ID)
	assert.NotNil(t, got[0].Products)

	locked, err := repos.Product.IsLocked(ctx)
	require.NoError(t, err)
	assert.False(t, locked)
	require.NoError(t, repos.Product.SetLocked(ctx, true))
	locked, err = repos.Product.IsLocked(ctx)
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestProductionRepositoryMalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyProductionTables, []byte("{oops")))
	repos := NewRepositories(store, nil)

	tables, err := repos.Production.LoadTables(ctx)
	require.NoError(t, err)
	assert.Len(t, tables, 3)
}

func TestProductionRepositoryHourData(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewMemoryStore(), nil)
	tables, err := repos.Production.LoadTables(ctx)
	require.NoError(t, err)

	logs := 42
	tables[0].HourData[3] = &entity.HourData{Logs: &logs}
	tables[0].LockedHours = []int{3}
	require.NoError(t, repos.Production.SaveTables(ctx, tables))

	got, err := repos.Production.LoadTables(ctx)
	require.NoError(t, err)
	require.NotNil(t, got[0].HourData[3])
	assert.Equal(t, 42, *got[0].HourData[3].Logs)
	assert.True(t, got[0].IsHourLocked(3))
	assert.NotNil(t, got[1].HourData)

	settings := calc.LineSettings{CoreSize: 40, RollSize: 120, LineSpeed: 450}
	require.NoError(t, repos.Production.SaveLineSettings(ctx, settings))
	gotSettings, err := repos.Production.LoadLineSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)
}

func TestUnwindRepositoryFillsMissingStands(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyUnwinds, []byte(`[{"id":2,"diameter":1800}]`)))
	repos := NewRepositories(store, nil)

	unwinds, err := repos.Unwind.Load(ctx)
	require.NoError(t, err)
	require.Len(t, unwinds, 2)
	assert.Equal(t, entity.Unwind1, unwinds[0].ID)
	assert.Zero(t, unwinds[0].Diameter)
	assert.Equal(t, 1800.0, unwinds[1].Diameter)
}

func TestRotaRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewMemoryStore(), nil)
	entries, err := repos.Rota.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries["2026-03-01"] = entity.RotaEntry{Type: entity.ShiftOTDay, Hours: 6}
	require.NoError(t, repos.Rota.Save(ctx, entries))

	got, err := repos.Rota.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
