package totp

import "errors"

var (
	ErrInvalidSecret             = errors.New("invalid secret")
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
	ErrFailedToDeriveCode        = errors.New("failed to derive TOTP code")
)
