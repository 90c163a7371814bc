package vault_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/pkg/otpauth"
	"github.com/safepass/safepass/pkg/vault"
)

func TestExport_IsSerializedCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.Add(ctx, otpauth.Credential{AccountName: "a@x.com", Issuer: "Google", Secret: "ABCD"})
	require.NoError(t, err)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)

	doc, err := vault.Export(accounts)
	require.NoError(t, err)

	var decoded []vault.Account
	require.NoError(t, json.Unmarshal(doc, &decoded))
	assert.Equal(t, accounts, decoded)
	assert.Contains(t, string(doc), `"secret": "ABCD"`, "backups carry cleartext secrets")
}

func TestImportMerge_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source, _ := newTestRepository(t)

	creds := []otpauth.Credential{
		{AccountName: "a@x.com", Issuer: "Google", Secret: "ABCD"},
		{AccountName: "b@x.com", Issuer: "GitHub", Secret: "JBSWY3DPEHPK3PXP"},
	}
	for _, cred := range creds {
		_, err := source.Add(ctx, cred)
		require.NoError(t, err)
	}

	accounts, err := source.List(ctx)
	require.NoError(t, err)
	doc, err := vault.Export(accounts)
	require.NoError(t, err)

	target, _ := newTestRepository(t)
	result, err := target.ImportMerge(ctx, doc)
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Empty(t, result.Skipped)

	restored, err := target.List(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 2)
	for i, account := range restored {
		assert.Equal(t, creds[i].AccountName, account.AccountName)
		assert.Equal(t, creds[i].Issuer, account.Issuer)
		assert.Equal(t, creds[i].Secret, account.Secret)
		// Identity is re-keyed on import.
		assert.NotEqual(t, accounts[i].ID, account.ID)
	}
}

func TestImportMerge_IdempotentReimport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.Add(ctx, otpauth.Credential{AccountName: "a@x.com", Issuer: "Google", Secret: "ABCD"})
	require.NoError(t, err)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	doc, err := vault.Export(accounts)
	require.NoError(t, err)

	result, err := repo.ImportMerge(ctx, doc)
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Len(t, result.Skipped, 1)

	accounts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestImportMerge_SkipsExistingLabelPair(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.Add(ctx, otpauth.Credential{AccountName: "a@x.com", Issuer: "Google", Secret: "EFGH"})
	require.NoError(t, err)

	// Same label pair, different secret: still classified as a duplicate.
	doc := []byte(`[{"id":"x","accountName":"a@x.com","issuer":"Google","secret":"ABCD","createdAt":1}]`)
	result, err := repo.ImportMerge(ctx, doc)
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "a@x.com", result.Skipped[0].AccountName)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "EFGH", accounts[0].Secret)
}

func TestImportMerge_SkipsDuplicatesWithinBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	doc := []byte(`[
		{"id":"1","accountName":"a@x.com","issuer":"Google","secret":"ABCD","createdAt":1},
		{"id":"2","accountName":"a@x.com","issuer":"Google","secret":"EFGH","createdAt":2},
		{"id":"3","accountName":"b@x.com","issuer":"Google","secret":"ABCD","createdAt":3}
	]`)

	result, err := repo.ImportMerge(ctx, doc)
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Len(t, result.Skipped, 1)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestImportMerge_MalformedDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `{{{`},
		{name: "not an array", doc: `{"accounts":[]}`},
		{name: "empty array", doc: `[]`},
		{name: "missing id", doc: `[{"accountName":"a@x.com","issuer":"Google","secret":"ABCD"}]`},
		{name: "missing account name", doc: `[{"id":"1","issuer":"Google","secret":"ABCD"}]`},
		{name: "missing issuer", doc: `[{"id":"1","accountName":"a@x.com","secret":"ABCD"}]`},
		{name: "missing secret", doc: `[{"id":"1","accountName":"a@x.com","issuer":"Google"}]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			repo, _ := newTestRepository(t)

			_, err := repo.ImportMerge(ctx, []byte(tt.doc))
			assert.ErrorIs(t, err, vault.ErrMalformedBackup)

			// Validation failures abort before any account is written.
			accounts, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, accounts)
		})
	}
}

func TestImportMerge_PartialProgressOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, _ := newTestRepository(t)

	// Second candidate carries a structurally present but underivable
	// secret; the first must stay persisted.
	doc := []byte(`[
		{"id":"1","accountName":"a@x.com","issuer":"Google","secret":"ABCD","createdAt":1},
		{"id":"2","accountName":"b@x.com","issuer":"GitHub","secret":"!!!!","createdAt":2}
	]`)

	result, err := repo.ImportMerge(ctx, doc)
	require.Error(t, err)
	assert.Len(t, result.Added, 1)

	accounts, listErr := repo.List(ctx)
	require.NoError(t, listErr)
	require.Len(t, accounts, 1)
	assert.Equal(t, "a@x.com", accounts[0].AccountName)
}
