package service

import (
	"context"
	"testing"

	"cloudnotes/cmd/internal/domain/sqlite"
	"cloudnotes/cmd/internal/domain/sqlite/repository"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/validators"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-at-least-16-chars"

type testServices struct {
	auth   *AuthService
	notes  *NoteService
	shares *ShareService
	tokens *utils.TokenSigner
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	validate := validators.New()
	tokens := utils.NewTokenSigner(testSecret, 0)
	noteRepo := repository.NewNoteRepository(db)

	return &testServices{
		auth:   NewAuthService(repository.NewAccountRepository(db), validate, tokens, bcrypt.MinCost),
		notes:  NewNoteService(noteRepo, validate),
		shares: NewShareService(repository.NewShareRepository(db), noteRepo, validate),
		tokens: tokens,
	}
}

func ptr[T any](v T) *T {
	return &v
}

var bg = context.Background()
