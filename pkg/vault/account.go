package vault

import "github.com/safepass/safepass/pkg/otpauth"

// Account is a stored credential. ID is assigned at creation and immutable;
// the secret never changes after creation (there is no edit path, only
// delete-and-re-add). CreatedAt is epoch milliseconds.
//
// The JSON field names are the vault's wire format: both the durable
// collection and backup documents are exactly the serialized []Account.
type Account struct {
	ID          string `json:"id"`
	AccountName string `json:"accountName"`
	Issuer      string `json:"issuer"`
	Secret      string `json:"secret"`
	CreatedAt   int64  `json:"createdAt"`
}

// dedupKey identifies an account for duplicate suppression on restore.
// Matching on the (accountName, issuer) label pair is a deliberate heuristic:
// two credentials with the same label but different secrets count as
// duplicates. See the package documentation.
type dedupKey struct {
	accountName string
	issuer      string
}

func (a Account) dedupKey() dedupKey {
	return dedupKey{accountName: a.AccountName, issuer: a.Issuer}
}

// credential strips an account back down to the transient triple used to
// re-add it, discarding identity fields.
func (a Account) credential() otpauth.Credential {
	return otpauth.Credential{
		AccountName: a.AccountName,
		Issuer:      a.Issuer,
		Secret:      a.Secret,
	}
}
