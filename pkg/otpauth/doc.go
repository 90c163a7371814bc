// Package otpauth parses and builds otpauth:// provisioning URIs, the
// de-facto standard payload of 2FA enrollment QR codes.
//
// Parse turns a scanned payload into the {accountName, issuer, secret}
// triple the vault stores; URI is its left inverse and produces a payload
// other authenticator apps can import. Both are pure functions with no side
// effects, and Parse converts every malformed input into a distinguishable
// error rather than panicking, so callers can fall back to manual entry on
// any failure:
//
//	cred, err := otpauth.Parse("otpauth://totp/Acme:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme")
//	// cred.AccountName == "alice@example.com", cred.Issuer == "Acme"
//
// The package deliberately consumes only the secret, issuer, and label
// fields. Algorithm, digit, and period parameters are accepted and ignored
// because this system fixes the standard 6-digit/30-second construction.
package otpauth
