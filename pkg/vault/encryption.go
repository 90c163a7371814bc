package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// EncryptionKeySize is the required key size for AES-256 (256 bits / 8 = 32 bytes).
const EncryptionKeySize = 32

// secretCipher encrypts account secrets at rest with AES-256-GCM. Ciphertext
// is stored base64-encoded in the secret field's place; the nonce is
// prepended to the sealed payload.
type secretCipher struct {
	key []byte
}

func (c *secretCipher) seal(plainText string) (string, error) {
	aesGCM, err := c.gcm()
	if err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	cipherText := aesGCM.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

func (c *secretCipher) open(cipherTextBase64 string) (string, error) {
	cipherText, err := base64.StdEncoding.DecodeString(cipherTextBase64)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	aesGCM, err := c.gcm()
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrInvalidCipherTooShort)
	}
	nonce, cipherText := cipherText[:nonceSize], cipherText[nonceSize:]

	plainText, err := aesGCM.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}
	return string(plainText), nil
}

func (c *secretCipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateEncryptionKey creates a new random 32-byte key suitable for
// encrypting secrets at rest, base64-encoded for storage in configuration.
func GenerateEncryptionKey() (string, error) {
	key := make([]byte, EncryptionKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Join(ErrFailedToGenerateEncryptionKey, err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// DecodeEncryptionKey decodes a base64 key produced by GenerateEncryptionKey
// and checks its length.
func DecodeEncryptionKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrInvalidEncryptionKeyLength, err)
	}
	if len(key) != EncryptionKeySize {
		return nil, ErrInvalidEncryptionKeyLength
	}
	return key, nil
}
