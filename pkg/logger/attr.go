package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AccountID records the account identifier under the key "account_id".
func AccountID(id string) slog.Attr {
	return slog.String("account_id", id)
}

// Issuer records the issuer name under the key "issuer".
func Issuer(name string) slog.Attr {
	return slog.String("issuer", name)
}

// Secret records the presence of a shared secret without exposing it.
// The value is always redacted; secrets never reach the log stream.
func Secret() slog.Attr {
	return slog.String("secret", "[REDACTED]")
}
