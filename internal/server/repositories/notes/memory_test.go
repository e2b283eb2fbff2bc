package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Janxz01/PersonalNoteHub/internal/common"
	"github.com/Janxz01/PersonalNoteHub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAppliesDefaults(t *testing.T) {
	r := NewMemoryRepository()

	n, err := r.Create(context.Background(), &models.Note{UserID: "1", Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.False(t, n.Pinned)
	assert.False(t, n.Archived)
	assert.Equal(t, []string{}, n.LabelIDs)
	assert.Equal(t, models.DefaultNoteColor, n.Color)
	assert.Equal(t, models.DefaultFontSize, n.FontSize)
	assert.False(t, n.CreatedAt.IsZero())
	assert.False(t, n.UpdatedAt.Before(n.CreatedAt), "updatedAt must be >= createdAt")
}

func TestMemoryRepository_CreateKeepsExplicitFields(t *testing.T) {
	r := NewMemoryRepository()

	n, err := r.Create(context.Background(), &models.Note{
		UserID: "1", Title: "t", Content: "c",
		Pinned: true, LabelIDs: []string{"5"}, Color: "#000000", FontSize: "large",
	})
	require.NoError(t, err)

	assert.True(t, n.Pinned)
	assert.Equal(t, []string{"5"}, n.LabelIDs)
	assert.Equal(t, "#000000", n.Color)
	assert.Equal(t, "large", n.FontSize)
}

func TestMemoryRepository_UpdateIsPartial(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	n, err := r.Create(ctx, &models.Note{UserID: "1", Title: "t", Content: "keep me"})
	require.NoError(t, err)

	title := "new title"
	got, err := r.Update(ctx, n.ID, models.NoteUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "keep me", got.Content, "absent fields must retain prior value")
	assert.False(t, got.UpdatedAt.Before(n.UpdatedAt))
}

func TestMemoryRepository_UpdateMissingNote(t *testing.T) {
	r := NewMemoryRepository()

	title := "x"
	_, err := r.Update(context.Background(), "999", models.NoteUpdate{Title: &title})
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryRepository_ListByOwnerOrdering(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	older, err := r.Create(ctx, &models.Note{UserID: "1", Title: "older", Content: "c"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	newer, err := r.Create(ctx, &models.Note{UserID: "1", Title: "newer", Content: "c"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	pinned, err := r.Create(ctx, &models.Note{UserID: "1", Title: "pinned", Content: "c", Pinned: true})
	require.NoError(t, err)

	// a different owner's note must not appear
	_, err = r.Create(ctx, &models.Note{UserID: "2", Title: "other", Content: "c"})
	require.NoError(t, err)

	got, err := r.ListByOwner(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, pinned.ID, got[0].ID, "pinned notes come first")
	assert.Equal(t, newer.ID, got[1].ID, "then most recently updated")
	assert.Equal(t, older.ID, got[2].ID)
}

func TestMemoryRepository_UpdateMovesNoteUpInOrdering(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	first, err := r.Create(ctx, &models.Note{UserID: "1", Title: "first", Content: "c"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = r.Create(ctx, &models.Note{UserID: "1", Title: "second", Content: "c"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	title := "first, edited"
	_, err = r.Update(ctx, first.ID, models.NoteUpdate{Title: &title})
	require.NoError(t, err)

	got, err := r.ListByOwner(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got[0].ID)
}

func TestMemoryRepository_Delete(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	n, err := r.Create(ctx, &models.Note{UserID: "1", Title: "t", Content: "c"})
	require.NoError(t, err)

	removed, err := r.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete finds nothing")

	_, err = r.GetByID(ctx, n.ID)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryRepository_RemoveLabelFromAll(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	withLabel, err := r.Create(ctx, &models.Note{UserID: "1", Title: "a", Content: "c", LabelIDs: []string{"3", "4"}})
	require.NoError(t, err)
	otherOwner, err := r.Create(ctx, &models.Note{UserID: "2", Title: "b", Content: "c", LabelIDs: []string{"3"}})
	require.NoError(t, err)

	require.NoError(t, r.RemoveLabelFromAll(ctx, "1", "3"))

	got, err := r.GetByID(ctx, withLabel.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, got.LabelIDs)

	other, err := r.GetByID(ctx, otherOwner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, other.LabelIDs, "other owners' notes untouched")
}
