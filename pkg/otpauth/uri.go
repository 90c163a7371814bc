package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme is the provisioning URI scheme used by authenticator QR codes.
	Scheme = "otpauth://"

	// FallbackAccountName labels credentials whose URI carries no account label.
	FallbackAccountName = "Unknown"
)

// Credential is the transient {accountName, issuer, secret} triple produced
// by URI parsing or manual entry. It is validated and promoted to a stored
// account by the vault; it is never persisted in this form.
type Credential struct {
	AccountName string
	Issuer      string
	Secret      string
}

// Validate ensures all fields required for URI construction are present.
func (c Credential) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	if c.AccountName == "" {
		return ErrMissingAccountName
	}
	if c.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// Parse extracts a credential from an otpauth:// provisioning URI.
//
// The secret query parameter is required. The issuer is taken from the issuer
// parameter when present, else from the "Issuer:" prefix of the label, else
// from the URI host. The account name is the label path segment with any
// issuer prefix and leading separator stripped; a URI without a label yields
// FallbackAccountName. Additional parameters (algorithm, digits, period) are
// accepted and ignored since code derivation is fixed at 6 digits over
// 30-second windows.
//
// Any input that does not start with the otpauth scheme, or that fails
// generic URI parsing, is rejected with an error; Parse never panics.
func Parse(raw string) (Credential, error) {
	if !strings.HasPrefix(raw, Scheme) {
		return Credential{}, ErrUnrecognizedScheme
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Credential{}, errors.Join(ErrMalformedURI, err)
	}

	secret := u.Query().Get("secret")
	if secret == "" {
		return Credential{}, ErrMissingSecret
	}

	issuer := u.Query().Get("issuer")

	// The label convention is "Issuer:account". The prefix fills in a
	// missing issuer parameter and is otherwise stripped from the account
	// name.
	accountName := strings.TrimPrefix(u.Path, "/")
	if prefix, rest, ok := strings.Cut(accountName, ":"); ok {
		if issuer == "" {
			issuer = prefix
		}
		accountName = rest
	}
	if accountName == "" {
		accountName = FallbackAccountName
	}
	if issuer == "" {
		issuer = u.Host
	}

	return Credential{
		AccountName: accountName,
		Issuer:      issuer,
		Secret:      secret,
	}, nil
}

// URI builds the provisioning URI for a credential, the left inverse of Parse
// for the accountName/issuer/secret fields. The format follows the Key Uri
// Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func URI(cred Credential) (string, error) {
	if err := cred.Validate(); err != nil {
		return "", err
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(cred.Issuer),
		url.PathEscape(cred.AccountName),
	)

	query := url.Values{}
	query.Set("secret", cred.Secret)
	query.Set("issuer", cred.Issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", "6")
	query.Set("period", "30")

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}
