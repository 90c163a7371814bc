package vault

import (
	"context"
	"encoding/json"
	"errors"
)

// Export serializes the full account collection to a portable JSON document,
// secrets in cleartext. A backup is only as secure as the file system it
// lands on; no extra encryption layer is applied here.
func Export(accounts []Account) ([]byte, error) {
	return json.MarshalIndent(accounts, "", "  ")
}

// ImportResult reports the outcome of a merge: which candidates were added
// (with their freshly assigned IDs) and which were classified as duplicates.
type ImportResult struct {
	Added   []Account
	Skipped []Account
}

// ImportMerge parses a backup document and merges it into the collection,
// suppressing duplicates.
//
// The document must be a non-empty JSON array whose entries all carry
// non-empty id/accountName/issuer/secret fields; anything else fails with
// ErrMalformedBackup before a single account is written. Structural
// validation is all that happens to the incoming id and createdAt values:
// accepted candidates are re-added through Add and get fresh ones.
//
// A candidate whose (accountName, issuer) pair matches an existing account,
// or an earlier candidate accepted in the same batch, is skipped. Accepted
// candidates are persisted one by one, so a failure mid-import keeps the
// accounts added so far; the partial result accompanies the error.
func (r *Repository) ImportMerge(ctx context.Context, doc []byte) (ImportResult, error) {
	var candidates []Account
	if err := json.Unmarshal(doc, &candidates); err != nil {
		return ImportResult{}, errors.Join(ErrMalformedBackup, err)
	}
	if len(candidates) == 0 {
		return ImportResult{}, ErrMalformedBackup
	}
	for _, c := range candidates {
		if c.ID == "" || c.AccountName == "" || c.Issuer == "" || c.Secret == "" {
			return ImportResult{}, ErrMalformedBackup
		}
	}

	existing, err := r.List(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	seen := make(map[dedupKey]struct{}, len(existing))
	for _, account := range existing {
		seen[account.dedupKey()] = struct{}{}
	}

	result := ImportResult{Added: []Account{}, Skipped: []Account{}}
	for _, candidate := range candidates {
		key := candidate.dedupKey()
		if _, dup := seen[key]; dup {
			result.Skipped = append(result.Skipped, candidate)
			continue
		}

		added, err := r.Add(ctx, candidate.credential())
		if err != nil {
			return result, err
		}
		seen[key] = struct{}{}
		result.Added = append(result.Added, added)
	}
	return result, nil
}
