package totp

import (
	"errors"
	"time"

	"github.com/pquerna/otp"
	otplib "github.com/pquerna/otp/totp"
)

const (
	// Digits is the fixed width of generated codes.
	Digits = 6
	// Period is the fixed validity window of a code (RFC 6238 standard).
	Period = 30 * time.Second
)

// Code is a derived one-time password. It is ephemeral: recompute it from the
// secret and the current time whenever it is displayed, never persist it.
type Code struct {
	Value     string        // zero-padded decimal digit string
	Remaining time.Duration // time left in the current window, in (0, Period]
	Period    time.Duration // always Period; carried for display convenience
}

// Derive computes the code for the 30-second window containing now.
//
// Derivation is deterministic: two calls with the same secret and any two
// instants inside the same window return the same value. Derive performs no
// scheduling; callers that display codes are expected to re-invoke it about
// once per second and across window boundaries.
func Derive(secret string, now time.Time) (Code, error) {
	secret = NormalizeSecret(secret)
	if !ValidateSecret(secret) {
		return Code{}, ErrInvalidSecret
	}

	value, err := otplib.GenerateCodeCustom(secret, now, otplib.ValidateOpts{
		Period:    uint(Period / time.Second),
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return Code{}, errors.Join(ErrFailedToDeriveCode, err)
	}

	elapsed := time.Duration(now.UnixMilli()%Period.Milliseconds()) * time.Millisecond
	return Code{
		Value:     value,
		Remaining: Period - elapsed,
		Period:    Period,
	}, nil
}
