package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/models"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewUserRepo(openTestDB(t))

	user := &models.User{Username: "alice", PasswordHash: "hash", IsAdmin: true}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.IsAdmin)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserRepo_UniqueConstraintIsSoleConflictSource(t *testing.T) {
	repo := NewUserRepo(openTestDB(t))

	require.NoError(t, repo.Create(&models.User{Username: "bob", PasswordHash: "h1"}))

	// The duplicate surfaces from the storage layer's unique index,
	// not from any lookup beforehand
	err := repo.Create(&models.User{Username: "bob", PasswordHash: "h2"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := NewUserRepo(openTestDB(t))

	_, err := repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByID(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
