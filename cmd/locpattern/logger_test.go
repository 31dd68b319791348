package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		enabled slog.Level
		blocked slog.Level
		prefix  string
	}{
		{name: "debug text", level: "debug", format: "text", enabled: slog.LevelDebug, blocked: slog.LevelDebug - 1, prefix: "time="},
		{name: "warn json", level: "warn", format: "json", enabled: slog.LevelWarn, blocked: slog.LevelInfo, prefix: "{"},
		{name: "unknown falls back to info text", level: "loud", format: "xml", enabled: slog.LevelInfo, blocked: slog.LevelDebug, prefix: "time="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := newLogger(tt.level, tt.format, &buf)
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.blocked))

			logger.Log(context.Background(), tt.enabled, "hello")
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(tt.prefix)))
		})
	}
}
