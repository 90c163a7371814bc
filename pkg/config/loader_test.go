package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/pkg/config"
)

// Each test uses its own struct type: the loader caches per type, so reusing
// one across tests would leak state.

func TestLoad_Defaults(t *testing.T) {
	type defaultsConfig struct {
		Backend string `env:"TEST_DEFAULTS_BACKEND" envDefault:"sqlite"`
		Size    int    `env:"TEST_DEFAULTS_SIZE" envDefault:"256"`
	}

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, 256, cfg.Size)
}

func TestLoad_FromEnvironment(t *testing.T) {
	type envConfig struct {
		Backend string `env:"TEST_ENV_BACKEND" envDefault:"sqlite"`
	}

	t.Setenv("TEST_ENV_BACKEND", "redis")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "redis", cfg.Backend)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// A later environment change must not be observed for a cached type.
	t.Setenv("TEST_CACHED_VALUE", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type requiredConfig struct {
		Key string `env:"TEST_REQUIRED_KEY,required"`
	}

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[struct{}](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
