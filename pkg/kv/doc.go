// Package kv defines the key-value storage port the vault persists through,
// together with the backends shipped with SafePass.
//
// The vault's persistence model is deliberately simple: a handful of opaque
// keys, each holding the full serialized value, written wholesale on every
// mutation. Store captures exactly that capability and nothing more, so the
// higher layers stay independent of where the bytes land.
//
// Three implementations are provided:
//
//   - MemoryStore: in-process map, used in tests and for ephemeral sessions.
//   - SQLiteStore: a local SQLite database file, the default durable backend.
//   - RedisStore: a Redis server, for setups that already run one.
//
// An absent key is a valid state, reported as ErrKeyNotFound; callers treat
// it as "empty collection" or "default preferences" rather than a failure.
// All backend failures are wrapped with package sentinel errors and surfaced
// to the caller, never swallowed.
package kv
