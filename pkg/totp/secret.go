package totp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"regexp"
	"strings"
)

// secretAlphabet matches the Base32 alphabet used by 2FA issuers: uppercase A-Z and digits 2-7.
var secretAlphabet = regexp.MustCompile("^[A-Z2-7]+$")

// NormalizeSecret converts a shared secret to its canonical form: uppercase,
// with all whitespace and trailing "=" padding removed. Issuers hand out
// secrets in mixed case and grouped with spaces for readability, so every
// entry point normalizes before validating or deriving.
func NormalizeSecret(secret string) string {
	secret = strings.ToUpper(secret)
	secret = strings.Join(strings.Fields(secret), "")
	return strings.TrimRight(secret, "=")
}

// ValidateSecret reports whether the secret is usable for code derivation.
// It accepts any casing, embedded spaces, and optional padding. Invalid input
// never produces an error, only false.
func ValidateSecret(secret string) bool {
	secret = NormalizeSecret(secret)
	if !secretAlphabet.MatchString(secret) {
		return false
	}
	// Unpadded decoding silently drops leftover bits, accepting lengths no
	// real encoding produces. Those must fail here, not at derivation time.
	switch len(secret) % 8 {
	case 1, 3, 6:
		return false
	}
	_, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	return err == nil
}

// GenerateSecretKey generates a new Base32-encoded shared secret.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, 20) // 160-bit secret (RFC 4226 recommendation for cryptographic strength)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}
