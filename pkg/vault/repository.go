package vault

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/safepass/safepass/pkg/kv"
	"github.com/safepass/safepass/pkg/otpauth"
	"github.com/safepass/safepass/pkg/totp"
)

// DefaultAccountsKey is the storage key holding the serialized account
// collection.
const DefaultAccountsKey = "safepass_accounts"

// Repository owns the durable account collection. Every mutation reads the
// full collection, changes it in memory, and writes the full collection
// back, so a reader can never observe a partially-written state. It assumes
// a single logical writer; concurrent writers degrade to last-writer-wins on
// the whole collection.
type Repository struct {
	store kv.Store
	key   string
	now   func() time.Time
	newID func() string
	aead  *secretCipher
}

// RepositoryOption customizes a Repository.
type RepositoryOption func(*Repository)

// WithAccountsKey overrides the storage key for the account collection.
func WithAccountsKey(key string) RepositoryOption {
	return func(r *Repository) { r.key = key }
}

// WithClock injects the time source used for CreatedAt stamps.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator injects the generator for account IDs.
func WithIDGenerator(newID func() string) RepositoryOption {
	return func(r *Repository) { r.newID = newID }
}

// WithEncryptionKey enables AES-256-GCM encryption of secrets at rest using
// the given 32-byte key. Accounts round-trip transparently; only the
// persisted form is ciphered. Backups still export cleartext secrets.
func WithEncryptionKey(key []byte) RepositoryOption {
	return func(r *Repository) { r.aead = &secretCipher{key: key} }
}

// NewRepository creates a repository persisting through store.
func NewRepository(store kv.Store, opts ...RepositoryOption) (*Repository, error) {
	r := &Repository{
		store: store,
		key:   DefaultAccountsKey,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.aead != nil {
		if len(r.aead.key) != EncryptionKeySize {
			return nil, ErrInvalidEncryptionKeyLength
		}
	}
	return r, nil
}

// List returns the full collection in persisted (insertion) order. A vault
// with no prior writes yields an empty slice, not an error.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return []Account{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}

	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, errors.Join(ErrCorruptCollection, err)
	}

	if r.aead != nil {
		for i := range accounts {
			secret, err := r.aead.open(accounts[i].Secret)
			if err != nil {
				return nil, err
			}
			accounts[i].Secret = secret
		}
	}
	return accounts, nil
}

// Add validates the credential's secret, assigns a fresh ID and creation
// timestamp, appends it to the collection, and persists the result. Callers
// are expected to validate earlier for a friendlier error surface, but the
// repository re-enforces the invariant.
func (r *Repository) Add(ctx context.Context, cred otpauth.Credential) (Account, error) {
	if !totp.ValidateSecret(cred.Secret) {
		return Account{}, totp.ErrInvalidSecret
	}

	accounts, err := r.List(ctx)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:          r.newID(),
		AccountName: cred.AccountName,
		Issuer:      cred.Issuer,
		Secret:      cred.Secret,
		CreatedAt:   r.now().UnixMilli(),
	}
	accounts = append(accounts, account)

	if err := r.persist(ctx, accounts); err != nil {
		return Account{}, err
	}
	return account, nil
}

// Remove deletes the account with the matching ID. Removing an absent ID is
// a no-op, not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	accounts, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := accounts[:0]
	for _, account := range accounts {
		if account.ID != id {
			filtered = append(filtered, account)
		}
	}
	if len(filtered) == len(accounts) {
		return nil
	}
	return r.persist(ctx, filtered)
}

func (r *Repository) persist(ctx context.Context, accounts []Account) error {
	if r.aead != nil {
		ciphered := make([]Account, len(accounts))
		copy(ciphered, accounts)
		for i := range ciphered {
			secret, err := r.aead.seal(ciphered[i].Secret)
			if err != nil {
				return err
			}
			ciphered[i].Secret = secret
		}
		accounts = ciphered
	}

	raw, err := json.Marshal(accounts)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	return nil
}
