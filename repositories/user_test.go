package repositories

import (
	"qa-board/errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newUserRepository(t *testing.T) *UserRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db)
}

func Test_Create_User_And_Lookup(t *testing.T) {
	req := require.New(t)
	repo := newUserRepository(t)

	id, err := repo.CreateUser("alice", "alice@example.com", "$argon2id$hash")
	req.NoError(err)
	req.NotEmpty(id)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(id, byEmail.ID)
	req.Equal("alice", byEmail.Username)
	req.Equal("$argon2id$hash", byEmail.PasswordHash)
	req.Equal([]string{"user"}, byEmail.Roles)

	byID, err := repo.GetUserByID(id)
	req.NoError(err)
	req.Equal(byEmail, byID)
}

func Test_Create_User_Duplicates(t *testing.T) {
	req := require.New(t)
	repo := newUserRepository(t)
	_, err := repo.CreateUser("alice", "alice@example.com", "h")
	req.NoError(err)

	// Same email, other username
	_, err = repo.CreateUser("alicia", "alice@example.com", "h")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)

	// Same username with another case, other email
	_, err = repo.CreateUser("ALICE", "other@example.com", "h")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)

	// The failed attempts left nothing behind
	_, err = repo.GetUserByEmail("other@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func Test_Unknown_User(t *testing.T) {
	req := require.New(t)
	repo := newUserRepository(t)

	_, err := repo.GetUserByEmail("nobody@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = repo.GetUserByID("not-an-id")
	req.ErrorIs(err, errors.ErrUserNotFound)
}
