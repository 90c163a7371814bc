package vault

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/safepass/safepass/pkg/kv"
)

// DefaultSettingsKey is the storage key holding the serialized preferences
// record, independent of the account collection.
const DefaultSettingsKey = "safepass_settings"

// Settings is the persisted preferences record. Unknown fields in a stored
// record are tolerated on load so the shape can grow without migrations.
type Settings struct {
	ShowSeconds bool `json:"showSeconds"`
}

// DefaultSettings returns the preferences used before the first save.
func DefaultSettings() Settings {
	return Settings{ShowSeconds: true}
}

// SettingsStore persists the preferences record. It shares the storage port
// with the repository but owns its own key and lifecycle.
type SettingsStore struct {
	store kv.Store
	key   string
}

// SettingsOption customizes a SettingsStore.
type SettingsOption func(*SettingsStore)

// WithSettingsKey overrides the storage key for the preferences record.
func WithSettingsKey(key string) SettingsOption {
	return func(s *SettingsStore) { s.key = key }
}

// NewSettingsStore creates a settings store persisting through store.
func NewSettingsStore(store kv.Store, opts ...SettingsOption) *SettingsStore {
	s := &SettingsStore{store: store, key: DefaultSettingsKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted preferences, or DefaultSettings when none have
// been saved yet.
func (s *SettingsStore) Load(ctx context.Context) (Settings, error) {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, errors.Join(ErrStorageFailure, err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, errors.Join(ErrCorruptSettings, err)
	}
	return settings, nil
}

// Save persists the full preferences record, overwriting any prior value.
func (s *SettingsStore) Save(ctx context.Context, settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}
