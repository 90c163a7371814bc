package otpauth

import "errors"

var (
	ErrUnrecognizedScheme = errors.New("not an otpauth URI")
	ErrMalformedURI       = errors.New("malformed otpauth URI")
	ErrMissingSecret      = errors.New("missing secret")
	ErrMissingAccountName = errors.New("missing account name")
	ErrMissingIssuer      = errors.New("missing issuer")
)
