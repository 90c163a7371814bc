package qrcode

import (
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/safepass/safepass/pkg/otpauth"
)

var (
	// ErrEmptyContent is returned when the payload is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

// defaultSize is the image size in pixels used when no size is specified.
const defaultSize = 256

// Generate renders a QR code PNG carrying the given textual payload.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// ProvisioningImage renders the credential's otpauth provisioning URI as a
// QR code PNG, the payload other authenticator apps scan to import it.
func ProvisioningImage(cred otpauth.Credential, size int) ([]byte, error) {
	uri, err := otpauth.URI(cred)
	if err != nil {
		return nil, err
	}
	return Generate(uri, size)
}
