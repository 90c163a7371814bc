// Package vault owns the credential lifecycle of SafePass: the durable
// account collection, backup export/import with duplicate suppression, and
// the persisted preferences record.
//
// # Persistence model
//
// Repository keeps all accounts under a single key of the kv.Store port.
// Every mutation follows the same discipline: read the full collection,
// change it in memory, write the full collection back. The storage format is
// therefore exactly the serialized return value of List, and a reader can
// never observe a partially-written collection. The model assumes a single
// logical writer; hosts with concurrent writers get last-writer-wins on the
// whole collection, which is an accepted limitation rather than a guarantee.
//
// Secrets can optionally be encrypted at rest with AES-256-GCM via
// WithEncryptionKey; accounts round-trip transparently and only the
// persisted bytes are ciphered.
//
// # Backups
//
// Export produces a portable JSON array of accounts with cleartext secrets.
// ImportMerge validates a document structurally, then re-adds each candidate
// under a fresh ID unless its (accountName, issuer) pair already exists in
// the vault or earlier in the same batch. The label pair is a deliberate
// heuristic rather than a strong identity: a candidate with a known label
// but a different secret is still skipped. Changing that would be a product
// decision, not a bug fix.
//
// Imports commit account by account. A failure mid-import keeps the accounts
// added so far (at-least-partial-progress, not a transaction); the partial
// ImportResult accompanies the error so callers can report exactly what
// happened.
//
// # Errors
//
// Operations report failures synchronously through package sentinels
// (ErrStorageFailure, ErrMalformedBackup, ...) combined with errors.Join.
// None of them are fatal to the process and none leave prior persisted state
// inconsistent.
package vault
