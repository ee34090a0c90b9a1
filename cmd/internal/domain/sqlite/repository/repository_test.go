package repository

import (
	"context"
	"testing"

	"cloudnotes/cmd/internal/domain/entity"
	"cloudnotes/cmd/internal/domain/sqlite"
	"cloudnotes/cmd/internal/utils/uid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func newNote(owner, title string, updatedAt int64) *entity.Note {
	return &entity.Note{
		ID:        uid.Generate(),
		OwnerID:   owner,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestAccountRepository_EmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	account := &entity.Account{ID: uid.Generate(), Name: "Ana", Email: " Ana@X.com ", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, account))
	assert.Equal(t, "ana@x.com", account.Email)

	found, err := repo.FindByEmail(ctx, "ANA@x.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, account.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "ana@X.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	missing, err := repo.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.Account{ID: uid.Generate(), Name: "A", Email: "dup@x.com", PasswordHash: "h"}))
	err := repo.Create(ctx, &entity.Account{ID: uid.Generate(), Name: "B", Email: "DUP@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestNoteRepository_ListIsOwnerScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newNote("alice", "old", 1000)))
	require.NoError(t, repo.Create(ctx, newNote("alice", "newest", 3000)))
	require.NoError(t, repo.Create(ctx, newNote("alice", "middle", 2000)))
	require.NoError(t, repo.Create(ctx, newNote("bob", "bobs", 5000)))

	notes, err := repo.FindAllByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "old", notes[2].Title)

	none, err := repo.FindAllByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestNoteRepository_TiesOrderByNumericID(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	for _, id := range []string{"9", "10", "100", "99"} {
		note := newNote("alice", "note "+id, 1000)
		note.ID = id
		require.NoError(t, repo.Create(ctx, note))
	}

	notes, err := repo.FindAllByOwner(ctx, "alice")
	require.NoError(t, err)

	ids := make([]string, 0, len(notes))
	for _, note := range notes {
		ids = append(ids, note.ID)
	}
	assert.Equal(t, []string{"100", "99", "10", "9"}, ids)
}

func TestNoteRepository_FindByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	note := newNote("alice", "mine", 1000)
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.FindByOwner(ctx, "alice", note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, note.Content, found.Content)

	foreign, err := repo.FindByOwner(ctx, "bob", note.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestNoteRepository_UpdateByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	note := newNote("alice", "before", 1000)
	require.NoError(t, repo.Create(ctx, note))

	title := "after"
	updated, err := repo.UpdateByOwner(ctx, "alice", note.ID, &entity.NoteChanges{Title: &title, UpdatedAt: 2000})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, note.Content, updated.Content, "content must survive a title-only update")
	assert.Equal(t, int64(2000), updated.UpdatedAt)
	assert.Equal(t, int64(1000), updated.CreatedAt)

	content := ""
	updated, err = repo.UpdateByOwner(ctx, "alice", note.ID, &entity.NoteChanges{Content: &content, UpdatedAt: 3000})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "", updated.Content)

	hijack := "hijacked"
	foreign, err := repo.UpdateByOwner(ctx, "bob", note.ID, &entity.NoteChanges{Title: &hijack, UpdatedAt: 4000})
	require.NoError(t, err)
	assert.Nil(t, foreign)

	unchanged, err := repo.FindByOwner(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", unchanged.Title)
	assert.Equal(t, int64(3000), unchanged.UpdatedAt)
}

func TestNoteRepository_DeleteByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(newTestDB(t))

	note := newNote("alice", "keep", 1000)
	require.NoError(t, repo.Create(ctx, note))

	require.NoError(t, repo.DeleteByOwner(ctx, "bob", note.ID))
	still, err := repo.FindByOwner(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.NotNil(t, still, "a foreign delete must not remove the note")

	require.NoError(t, repo.DeleteByOwner(ctx, "alice", note.ID))
	gone, err := repo.FindByOwner(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.NoError(t, repo.DeleteByOwner(ctx, "alice", note.ID), "deleting twice is not an error")
}

func TestShareRepository_FindByToken(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	notes := NewNoteRepository(db)
	shares := NewShareRepository(db)

	note := newNote("alice", "shared", 1000)
	require.NoError(t, notes.Create(ctx, note))

	token := "0123456789abcdef0123456789abcdef"
	share := &entity.Share{ID: uid.Generate(), NoteID: note.ID, FromAccountID: "alice", LinkToken: &token, CanEdit: true}
	require.NoError(t, shares.Create(ctx, share))

	found, err := shares.FindByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsPublicLink())
	assert.True(t, found.CanEdit)
	require.NotNil(t, found.Note)
	assert.Equal(t, "shared", found.Note.Title)

	missing, err := shares.FindByToken(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShareRepository_EmailSharesHaveNoToken(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	shares := NewShareRepository(db)

	// Several token-less rows must coexist under the unique token index.
	for i := 0; i < 3; i++ {
		to := "friend@x.com"
		share := &entity.Share{ID: uid.Generate(), NoteID: "n1", FromAccountID: "alice", ToEmail: &to}
		require.NoError(t, shares.Create(ctx, share))
		assert.False(t, share.IsPublicLink())
	}

	var count int64
	require.NoError(t, db.Model(&entity.Share{}).Where("link_token IS NULL").Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestShareRepository_SurvivesNoteDeletion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	notes := NewNoteRepository(db)
	shares := NewShareRepository(db)

	note := newNote("alice", "doomed", 1000)
	require.NoError(t, notes.Create(ctx, note))

	token := "ffffffffffffffffffffffffffffffff"
	require.NoError(t, shares.Create(ctx, &entity.Share{ID: uid.Generate(), NoteID: note.ID, FromAccountID: "alice", LinkToken: &token}))
	require.NoError(t, notes.DeleteByOwner(ctx, "alice", note.ID))

	dangling, err := shares.FindByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, dangling, "shares are not cascaded")
	assert.Nil(t, dangling.Note)
}
