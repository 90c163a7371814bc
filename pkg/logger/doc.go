// Package logger builds the slog.Logger used by the SafePass CLI.
//
// It is a thin factory over log/slog with text and JSON handlers plus a few
// domain attribute helpers. The one rule it enforces by construction: shared
// secrets are never logged — the Secret attribute always redacts.
package logger
