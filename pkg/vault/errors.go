package vault

import "errors"

var (
	ErrStorageFailure    = errors.New("storage operation failed")
	ErrCorruptCollection = errors.New("stored account collection is corrupt")
	ErrCorruptSettings   = errors.New("stored settings record is corrupt")
	ErrMalformedBackup   = errors.New("malformed backup document")

	ErrFailedToEncryptSecret         = errors.New("failed to encrypt secret")
	ErrFailedToGenerateEncryptionKey = errors.New("failed to generate encryption key")
	ErrFailedToDecryptSecret         = errors.New("failed to decrypt secret")
	ErrInvalidCipherTooShort         = errors.New("cipher text too short")
	ErrInvalidEncryptionKeyLength    = errors.New("invalid encryption key length")
)
