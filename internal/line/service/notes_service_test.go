package service

import (
	"strings"
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesFoldersAndItems(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Notes

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree)

	faults, err := svc.CreateFolder(ctx, "", " Log saw ")
	require.NoError(t, err)
	assert.Equal(t, "Log saw", faults.Name)
	assert.True(t, strings.HasPrefix(faults.ID, "main-"))

	blades, err := svc.CreateFolder(ctx, faults.ID, "Blades")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blades.ID, faults.ID+"-"), "subfolder ids extend the parent id")

	_, err = svc.CreateFolder(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.CreateFolder(ctx, "", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	note, err := svc.AddItem(ctx, blades.ID, &DocItemInput{Name: ptr("Blade change"), Content: ptr("Lock out the saw first")})
	require.NoError(t, err)
	assert.Equal(t, entity.DocNote, note.Type)

	photo := entity.DocImage
	_, err = svc.AddItem(ctx, faults.ID, &DocItemInput{Name: ptr("Guard.jpg"), Type: &photo, URL: ptr("https://files.local/guard.jpg")})
	require.NoError(t, err)

	checklist := entity.DocChecklist
	_, err = svc.AddItem(ctx, faults.ID, &DocItemInput{Name: ptr("Steps"), Type: &checklist})
	assert.ErrorIs(t, err, ErrInvalidInput, "troubleshooting notes hold no checklists")

	updated, err := svc.UpdateItem(ctx, note.ID, &DocItemInput{Content: ptr("Lock out and tag the saw")})
	require.NoError(t, err)
	assert.Equal(t, "Blade change", updated.Name)
	assert.Equal(t, "Lock out and tag the saw", updated.Content)

	_, err = svc.UpdateItem(ctx, note.ID, &DocItemInput{Type: &photo})
	assert.ErrorIs(t, err, ErrInvalidInput)

	path, err := svc.FolderPath(ctx, blades.ID)
	require.NoError(t, err)
	assert.Equal(t, "Log saw / Blades", path)

	require.NoError(t, svc.DeleteItem(ctx, note.ID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, note.ID), ErrNotFound)

	// deleting a folder takes its subfolders with it
	require.NoError(t, svc.DeleteFolder(ctx, faults.ID))
	tree, err = svc.Tree(ctx)
	require.NoError(t, err)
	assert.Empty(t, tree)
	assert.ErrorIs(t, svc.DeleteFolder(ctx, blades.ID), ErrNotFound)
}

func TestNotesSearch(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.Notes

	saw, err := svc.CreateFolder(ctx, "", "Log saw")
	require.NoError(t, err)
	blades, err := svc.CreateFolder(ctx, saw.ID, "Blades")
	require.NoError(t, err)
	wrapper, err := svc.CreateFolder(ctx, "", "Wrapper")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, blades.ID, &DocItemInput{Name: ptr("Blade change"), Content: ptr("Check the grinder")})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, wrapper.ID, &DocItemInput{Name: ptr("Film jam"), Content: ptr("Blade of the cutter is blunt")})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, wrapper.ID, &DocItemInput{Name: ptr("Sealer"), Content: ptr("temperature")})
	require.NoError(t, err)

	matches, err := svc.Search(ctx, "BLADE", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "title", matches[0].MatchType)
	assert.Equal(t, "Log saw / Blades", matches[0].FolderPath)
	assert.Equal(t, "content", matches[1].MatchType)

	// any term may match
	matches, err = svc.Search(ctx, "grinder sealer", "")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = svc.Search(ctx, "blade change", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "title", matches[0].MatchType)

	matches, err = svc.Search(ctx, "blade grinder", saw.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "both", matches[0].MatchType)
	assert.Equal(t, blades.ID, matches[0].FolderID)

	matches, err = svc.Search(ctx, "   ", "")
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = svc.Search(ctx, "blade", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
