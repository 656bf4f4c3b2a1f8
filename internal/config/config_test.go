package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_MissingRequired(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_DSN", "")
	t.Setenv("CATALOG_SESSION_SECRET", "")

	_, err := NewConfig()
	require.Error(t, err)
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_DSN", "./catalog.db")
	t.Setenv("CATALOG_SESSION_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./catalog.db", cfg.DatabaseDSN)
	assert.Equal(t, "test-secret", cfg.SessionSecret)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_DSN", "/data/catalog.db")
	t.Setenv("CATALOG_SESSION_SECRET", "s3cret")
	t.Setenv("CATALOG_PORT", "9090")
	t.Setenv("CATALOG_UPLOAD_DIR", "/data/uploads")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/data/uploads", cfg.UploadDir)
}
