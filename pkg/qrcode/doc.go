// Package qrcode renders QR code images for credential provisioning.
//
// The interesting payload is the otpauth URI built by the otpauth package;
// this package only turns it into pixels so another authenticator app can
// scan a credential out of the vault. Decoding camera input back into text
// is a host capability and stays outside the core.
package qrcode
