package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/itembox/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "input %q", in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info("dropped")
	l.Warn("kept", slog.Int("id", 3))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "kept", m["msg"])
	assert.EqualValues(t, 3, m["id"])
	assert.NotContains(t, m, "source")
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	l.Debug("hello")
	out := buf.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "source=")
}

func TestNew_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l := New(config.LogConfig{Level: "error"})
	assert.Same(t, l, slog.Default())
}
