package service

import (
	"testing"

	"github.com/bitfantasy/linedash/internal/line/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeChangeChecklist(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.GradeChange

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 3)

	checklist := entity.DocChecklist
	item, err := svc.AddItem(ctx, "1-1", &DocItemInput{
		Name: ptr("2ply to 3ply"),
		Type: &checklist,
		Checklist: &[]entity.ChecklistItem{
			{Task: " Change embosser roll ", Value: "Quilt"},
			{Task: "Set core size", Value: "42mm"},
		},
	})
	require.NoError(t, err)
	require.Len(t, item.Checklist, 2)
	assert.Equal(t, "Change embosser roll", item.Checklist[0].Task)

	item, err = svc.ToggleStep(ctx, item.ID, 1)
	require.NoError(t, err)
	assert.True(t, item.Checklist[1].Done)
	done, total := ChecklistProgress(*item)
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	_, err = svc.ToggleStep(ctx, item.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// checklist steps are searchable content
	matches, err := svc.Search(ctx, "42mm", "1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Grade Change Procedures / Standard Grades", matches[0].FolderPath)

	item, err = svc.ResetChecklist(ctx, item.ID)
	require.NoError(t, err)
	done, _ = ChecklistProgress(*item)
	assert.Zero(t, done)
	assert.Equal(t, "42mm", item.Checklist[1].Value, "reset keeps the values")

	_, err = svc.UpdateItem(ctx, item.ID, &DocItemInput{Content: ptr("free text")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	note, err := svc.AddItem(ctx, "2", &DocItemInput{Name: ptr("Core sizes"), Content: ptr("38, 42, 45")})
	require.NoError(t, err)
	_, err = svc.ToggleStep(ctx, note.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateItem(ctx, note.ID, &DocItemInput{Checklist: &[]entity.ChecklistItem{{Task: "x"}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ResetChecklist(ctx, "file-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGradeChangeSeedIsEditable(t *testing.T) {
	env := setupServices(t)
	svc := env.svcs.GradeChange

	require.NoError(t, svc.DeleteFolder(ctx, "3-2"))
	sub, err := svc.CreateFolder(ctx, "3", "Audits")
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	quality := tree[2]
	require.Len(t, quality.Subfolders, 2)
	assert.Equal(t, "Specifications", quality.Subfolders[0].Name)
	assert.Equal(t, sub.ID, quality.Subfolders[1].ID)
}
