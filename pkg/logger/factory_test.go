package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/pkg/logger"
)

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("app", "safepass")),
	)

	log.Info("account added", logger.AccountID("abc"), logger.Issuer("Acme"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "account added", record["msg"])
	assert.Equal(t, "safepass", record["app"])
	assert.Equal(t, "abc", record["account_id"])
	assert.Equal(t, "Acme", record["issuer"])
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithLevel(slog.LevelWarn),
		logger.WithOutput(&buf),
	)

	log.Info("suppressed")
	assert.Empty(t, buf.String())

	log.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestWithFormat_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("yaml")))
	})
}

func TestSecretAttrRedacts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatJSON), logger.WithOutput(&buf))

	log.Info("credential parsed", logger.Secret())

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "JBSWY3DP")
}
