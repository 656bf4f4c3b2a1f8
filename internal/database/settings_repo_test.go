package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_Defaults(t *testing.T) {
	repo := NewSettingsRepo(openTestDB(t))

	timeout, err := repo.GetInt(SettingSessionTimeout)
	require.NoError(t, err)
	assert.Equal(t, 60, timeout)

	maxMB, err := repo.GetInt(SettingUploadMaxMB)
	require.NoError(t, err)
	assert.Equal(t, 10, maxMB)
}

func TestSettingsRepo_SetOverwrites(t *testing.T) {
	repo := NewSettingsRepo(openTestDB(t))

	require.NoError(t, repo.Set(SettingSessionTimeout, "120"))

	timeout, err := repo.GetInt(SettingSessionTimeout)
	require.NoError(t, err)
	assert.Equal(t, 120, timeout)
}
