// Package totp derives time-based one-time passwords from stored shared
// secrets.
//
// The package covers two concerns: validating/normalizing the Base32 secrets
// that 2FA issuers hand out, and deriving the rolling 6-digit code for the
// 30-second window containing a given instant. Code width, window length and
// the HMAC-SHA1 construction are fixed design constants, not per-account
// configuration.
//
// Derivation is a pure function of (secret, now). The package performs no
// scheduling of its own; the caller owns the refresh loop and its
// cancellation, which keeps derivation trivially testable without fake
// timers:
//
//	code, err := totp.Derive("JBSWY3DPEHPK3PXP", time.Now())
//	if err != nil {
//	    // errors.Is(err, totp.ErrInvalidSecret)
//	}
//	fmt.Println(code.Value, code.Remaining)
//
// Secrets are accepted in the loose form produced by real issuers: any
// casing, optional "=" padding, and embedded spaces are all tolerated and
// normalized away. ValidateSecret never returns an error for bad input, only
// false; Derive fails with ErrInvalidSecret rather than returning a sentinel
// code.
//
// The cryptographic construction itself is delegated to the standard
// github.com/pquerna/otp library (RFC 4226 / RFC 6238).
package totp
