package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, parseLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	require.Equal(t, slog.LevelInfo, parseLevel("chatty"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewLogger_JSONWhenNotATerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.Info("dropped")
	logger.Warn("kept", "post_id", "p1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["msg"])
	require.Equal(t, "p1", line["post_id"])
}
