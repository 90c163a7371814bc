package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores one parsed instance per configuration type so each type
// is loaded from the environment exactly once per process.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on its `env` field tags. The default .env file is loaded first (once
// per process; a missing file is fine). Subsequent calls for the same struct
// type return the cached instance.
//
// Example:
//
//	type StorageConfig struct {
//		Backend string `env:"SAFEPASS_STORAGE" envDefault:"sqlite"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[typeName]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	globalCache.mu.Lock()
	globalCache.values[typeName] = *v
	globalCache.mu.Unlock()
	return nil
}

// MustLoad is Load that panics on failure, for program startup paths where a
// missing required variable should stop the process.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}

func getTypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return fmt.Sprintf("%s.%s", t.PkgPath(), t.Name())
}
