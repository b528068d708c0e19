package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, 5*time.Minute, c.CacheTTL)
	assert.Equal(t, time.UTC, c.Location())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_ADDR=:9000\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("SYNC_COMPENSATE_UPDATES", "true")
	// Registers a restore for the value godotenv is about to set.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	c, err := Load(file)

	require.NoError(t, err)
	assert.Equal(t, ":7000", c.HTTPAddr)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.CompensateUpdates)
	assert.Equal(t, "Asia/Kolkata", c.Location().String())
}

func TestValidate(t *testing.T) {
	base := App{StoreDriver: "memory", DBDriver: "postgres", PhotoDriver: "fs", LogLevel: "info", LogFormat: "json", Timezone: "UTC"}
	require.NoError(t, base.Validate())

	bad := base
	bad.StoreDriver = "mongo"
	assert.Error(t, bad.Validate())

	bad = base
	bad.PhotoDriver = "s3"
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogLevel = "verbose"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Timezone = "Mars/Olympus"
	assert.Error(t, bad.Validate())
}
