package repository

import (
	"context"
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newFactorRepo(t *testing.T) (ConversionFactorRepository, *MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	store := NewMemoryStore()
	return NewConversionFactorRepository(store, zap.New(core)), store, logs
}

func TestFactorLoadDefaultsWhenAbsent(t *testing.T) {
	repo, _, _ := newFactorRepo(t)
	factors, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultConversionFactors(), factors)
}

func TestFactorLoadDefaultsWhenEmptyValue(t *testing.T) {
	repo, store, _ := newFactorRepo(t)
	require.NoError(t, store.Set(context.Background(), KeyConversionFactors, []byte("  ")))

	factors, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultConversionFactors(), factors)
}

func TestFactorRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newFactorRepo(t)
	want := []entity.ConversionFactor{
		{Diameter: 105, PerfLength: 120, Factor: 23.53, IsLocked: true},
		{Diameter: 120, PerfLength: 130, Factor: 25},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFactorSavedEmptyListStaysEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newFactorRepo(t)
	require.NoError(t, repo.Save(ctx, nil))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFactorStoredWireFormat(t *testing.T) {
	ctx := context.Background()
	repo, store, _ := newFactorRepo(t)
	require.NoError(t, repo.Save(ctx, []entity.ConversionFactor{{Diameter: 112, PerfLength: 124, Factor: 23.99}}))

	raw, err := store.Get(ctx, KeyConversionFactors)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"diameter":112,"perfLength":124,"factor":23.99}]`, string(raw))
}

func TestFactorLoadFallsBackOnBadData(t *testing.T) {
	cases := map[string]string{
		"malformed json":     `[{"diameter":105,`,
		"not an array":       `{"diameter":105}`,
		"null":               `null`,
		"missing factor":     `[{"diameter":105,"perfLength":120}]`,
		"zero diameter":      `[{"diameter":0,"perfLength":120,"factor":23}]`,
		"negative factor":    `[{"diameter":105,"perfLength":120,"factor":-1}]`,
		"duplicate key":      `[{"diameter":105,"perfLength":120,"factor":23},{"diameter":105,"perfLength":120,"factor":24}]`,
		"string where float": `[{"diameter":"105","perfLength":120,"factor":23}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo, store, logs := newFactorRepo(t)
			require.NoError(t, store.Set(ctx, KeyConversionFactors, []byte(raw)))

			factors, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, entity.DefaultConversionFactors(), factors)
			assert.Equal(t, 1, logs.Len())

			// the bad value is left in place
			stored, err := store.Get(ctx, KeyConversionFactors)
			require.NoError(t, err)
			assert.Equal(t, raw, string(stored))
		})
	}
}

func TestFactorSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo, store, _ := newFactorRepo(t)
	err := repo.Save(ctx, []entity.ConversionFactor{
		{Diameter: 105, PerfLength: 120, Factor: 23},
		{Diameter: 105, PerfLength: 120, Factor: 24},
	})
	assert.Error(t, err)

	_, err = store.Get(ctx, KeyConversionFactors)
	assert.ErrorIs(t, err, ErrNotFound)
}
