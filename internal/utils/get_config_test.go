package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile_EnvOverridesFileAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: \"3000\"\nMONGODB_URI: mongodb://file:27017\nJWT_SECRET: from-file\n"), 0o600))

	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	LoadConfigFile(path)

	assert.Equal(t, "3000", GetConfig("APP_PORT"))
	assert.Equal(t, "mongodb://file:27017", GetConfig("MONGODB_URI"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, "sustainbite", GetConfig("MONGODB_DATABASE"))
	assert.Equal(t, 120, GetConfigInt("SESSION_TTL_MINUTES"))
	assert.Equal(t, "", GetConfig("NOT_A_KEY"))
}

func TestGetConfigInt_FallsBackToDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_SECOND", "")
	LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))

	SetConfig("RATE_LIMIT_PER_SECOND", "lots")
	assert.Equal(t, 20, GetConfigInt("RATE_LIMIT_PER_SECOND"))

	SetConfig("RATE_LIMIT_PER_SECOND", "50")
	assert.Equal(t, 50, GetConfigInt("RATE_LIMIT_PER_SECOND"))
}
