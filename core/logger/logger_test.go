package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/core/logger"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat("json"),
		logger.WithLevel("debug"),
		logger.WithAttr(logger.Component("test")),
	)

	log.Debug("send failed",
		logger.Recipient("jane@x.com"),
		logger.Role("client_confirmation"),
		logger.Error(errors.New("boom")),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "send failed", rec["msg"])
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, "jane@x.com", rec["recipient"])
	assert.Equal(t, "client_confirmation", rec["role"])
	assert.Equal(t, "boom", rec["error"])
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel("warn"))
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, slog.Attr{}, logger.Recipient(""))
	assert.Equal(t, slog.Attr{}, logger.ProjectID(""))
	assert.Equal(t, slog.Attr{}, logger.Panic(nil))
}
