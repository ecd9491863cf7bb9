package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderID(t *testing.T) {
	assert.Equal(t, "waitrose-premium", FolderID("Waitrose Premium"))
	assert.Equal(t, "my-new-line", FolderID("My  New\tLine"))
	assert.Equal(t, "", FolderID("   "))
}

func TestAddFolder(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Product

	folder, err := svc.AddFolder(ctx, "Own Brand")
	require.NoError(t, err)
	assert.Equal(t, "own-brand", folder.ID)
	assert.Nil(t, folder.DefaultSettings)

	_, err = svc.AddFolder(ctx, "own brand")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.AddFolder(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	folders, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 4)

	require.NoError(t, svc.DeleteFolder(ctx, "own-brand"))
	assert.ErrorIs(t, svc.DeleteFolder(ctx, "own-brand"), ErrNotFound)
}

func TestAddProductMergesDefaults(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Product

	p, err := svc.AddProduct(ctx, "andrex-complete", &ProductInput{
		Name:     ptr("Andrex 9 roll"),
		Settings: &ProductSpecInput{SheetWidth: ptr(99.0), TissueMachine: &TissueMachineInput{Unwind2: ptr("TM5")}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "andrex-complete-"))
	assert.Len(t, p.ID, len("andrex-complete-")+8)
	assert.Equal(t, 112.0, p.Settings.Diameter)
	assert.Equal(t, 124.0, p.Settings.PerfLength)
	assert.Equal(t, 99.0, p.Settings.SheetWidth)
	assert.Equal(t, "PM3-2PLY", p.Settings.TissueMachine.Unwind1)
	assert.Equal(t, "TM5", p.Settings.TissueMachine.Unwind2)

	// a folder without defaults falls back to the base product
	_, err = svc.AddFolder(ctx, "Own Brand")
	require.NoError(t, err)
	p, err = svc.AddProduct(ctx, "own-brand", &ProductInput{Name: ptr("Plain")})
	require.NoError(t, err)
	assert.Equal(t, 105.0, p.Settings.Diameter)
	assert.Equal(t, "TM5", p.Settings.TissueMachine.Unwind1)

	_, err = svc.AddProduct(ctx, "missing", &ProductInput{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AddProduct(ctx, "own-brand", &ProductInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProductKeepsID(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Product
	p, err := svc.AddProduct(ctx, "waitrose-premium", &ProductInput{Name: ptr("Premium 4")})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, "waitrose-premium", p.ID, &ProductInput{
		Name:     ptr("Premium 6"),
		Settings: &ProductSpecInput{PerfLength: ptr(120.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Premium 6", updated.Name)
	assert.Equal(t, 120.0, updated.Settings.PerfLength)
	assert.Equal(t, 112.0, updated.Settings.Diameter)
}

func TestSetActiveIsExclusive(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Product
	a, err := svc.AddProduct(ctx, "waitrose-essentials", &ProductInput{Name: ptr("A")})
	require.NoError(t, err)
	b, err := svc.AddProduct(ctx, "waitrose-premium", &ProductInput{Name: ptr("B")})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, "waitrose-essentials", a.ID)
	require.NoError(t, err)
	_, err = svc.SetActive(ctx, "waitrose-premium", b.ID)
	require.NoError(t, err)

	folders, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	active := 0
	for _, f := range folders {
		for _, p := range f.Products {
			if p.IsActive {
				active++
				assert.Equal(t, b.ID, p.ID)
			}
		}
	}
	assert.Equal(t, 1, active)

	current, err := svc.ActiveProduct(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, b.ID, current.ID)
}

func TestProductLock(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Product
	a, err := svc.AddProduct(ctx, "waitrose-essentials", &ProductInput{Name: ptr("A")})
	require.NoError(t, err)
	b, err := svc.AddProduct(ctx, "waitrose-essentials", &ProductInput{Name: ptr("B")})
	require.NoError(t, err)
	_, err = svc.SetActive(ctx, "waitrose-essentials", a.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SetLocked(ctx, true))
	locked, err := svc.IsLocked(ctx)
	require.NoError(t, err)
	assert.True(t, locked)

	_, err = svc.SetActive(ctx, "waitrose-essentials", b.ID)
	assert.ErrorIs(t, err, ErrProductLocked)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "waitrose-essentials", a.ID), ErrProductLocked)
	assert.ErrorIs(t, svc.DeleteFolder(ctx, "waitrose-essentials"), ErrProductLocked)

	// inactive products can still be removed
	require.NoError(t, svc.DeleteProduct(ctx, "waitrose-essentials", b.ID))

	current, err := svc.ActiveProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID)
}
