// filepath: internal/repository/user_repo_test.go
package repository

import (
	"errors"
	"testing"

	"woodbank/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMigratedRepo(t *testing.T, dbPath string) *Repository {
	repo := newTestRepo(t, dbPath)
	require.NoError(t, repo.RunMigrations())
	return repo
}

func TestCreateUser(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_create.db")

	user, err := repo.CreateUser(&UserCreateArgs{
		Username:    "frodo",
		Password:    "secret",
		Role:        "Lead",
		DisplayName: "Frodo B.",
		Email:       "frodo@woodbank.local",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "lead", user.Role, "role must be stored normalized")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	t.Run("Duplicate Username", func(t *testing.T) {
		_, err := repo.CreateUser(&UserCreateArgs{Username: "frodo", Password: "x", Role: "volunteer"})
		assert.ErrorIs(t, err, shared.ErrUserExists)
	})

	t.Run("Invalid Role Rejected", func(t *testing.T) {
		_, err := repo.CreateUser(&UserCreateArgs{Username: "sam", Password: "x", Role: "gardener"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidRole))

		exists, err := repo.UserExists("sam")
		require.NoError(t, err)
		assert.False(t, exists, "no row must be written for a rejected role")
	})
}

func TestGetUserByUsername(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_get.db")

	user, err := repo.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	// Second read should come from the cache and agree with the first.
	cached, err := repo.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, cached.ID)

	byID, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Username)

	_, err = repo.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestVerifyCredentials(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_verify.db")

	user, err := repo.VerifyCredentials("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = repo.VerifyCredentials("admin", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	// Unknown usernames report the same error as bad passwords.
	_, err = repo.VerifyCredentials("nobody", "whatever")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestUpdateUserPassword(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_passwd.db")

	require.NoError(t, repo.UpdateUserPassword("volunteer", "newsecret"))

	_, err := repo.VerifyCredentials("volunteer", "volunteer")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials, "old password must stop working")

	user, err := repo.VerifyCredentials("volunteer", "newsecret")
	require.NoError(t, err)
	assert.Equal(t, "volunteer", user.Username)

	assert.ErrorIs(t, repo.UpdateUserPassword("nobody", "x"), shared.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_delete.db")

	user, err := repo.GetUserByUsername("volunteer")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteUser(user.ID))

	// Cache must be invalidated along with the row.
	_, err = repo.GetUserByUsername("volunteer")
	assert.ErrorIs(t, err, shared.ErrUserNotFound)

	assert.ErrorIs(t, repo.DeleteUser(user.ID), shared.ErrUserNotFound)
}

func TestGetUsers(t *testing.T) {
	repo := newMigratedRepo(t, "test_user_list.db")

	users, err := repo.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 4)

	// Sorted by username.
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "volunteer", users[3].Username)
}
