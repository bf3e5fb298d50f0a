package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("HASH_ALGORITHM")
	os.Unsetenv("PORT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sha-256", cfg.HashAlgorithm)
	assert.Equal(t, 4, cfg.BatchConcurrency)
	assert.True(t, cfg.AllowRemoteLD)
	assert.Equal(t, "2.1", cfg.CBVVersion)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	os.Setenv("HASH_ALGORITHM", "md5")
	defer os.Unsetenv("HASH_ALGORITHM")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownCBVVersion(t *testing.T) {
	os.Setenv("CBV_VERSION", "1.0")
	defer os.Unsetenv("CBV_VERSION")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadHonorsOverrides(t *testing.T) {
	os.Setenv("HASH_ALGORITHM", "sha3-256")
	os.Setenv("PORT", "9090")
	defer func() {
		os.Unsetenv("HASH_ALGORITHM")
		os.Unsetenv("PORT")
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sha3-256", cfg.HashAlgorithm)
	assert.Equal(t, "9090", cfg.Port)
}
