package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	Info("hidden")
	Debug("hidden")
	Warn("shown")
	Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRequestIDContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))

	FromContext(ctx).Info("with id")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-req-123", entry["request_id"])

	assert.Empty(t, GetRequestID(context.Background()))
	assert.Len(t, GenerateRequestID(), 36)
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		format     string
		env        string
		wantLevel  slog.Level
		wantJSON   bool
		wantSource bool
	}{
		{"dev text debug", "debug", "text", "dev", slog.LevelDebug, false, true},
		{"development spelled out", "info", "TEXT", "Development", slog.LevelInfo, false, true},
		{"prod json", "info", "JSON", "prod", slog.LevelInfo, true, false},
		{"warning alias", "WARNING", "json", "staging", slog.LevelWarn, true, false},
		{"unknown level", "verbose", "json", "prod", slog.LevelInfo, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.level, tt.format, "svc", "v1", tt.env)
			assert.Equal(t, tt.wantLevel, cfg.LogLevel())
			assert.Equal(t, tt.wantJSON, cfg.IsJSON())
			assert.Equal(t, tt.wantSource, cfg.AddSource)
		})
	}

	def := DefaultConfig()
	assert.Equal(t, DefaultServiceName, def.ServiceName)
	assert.Equal(t, slog.LevelInfo, def.LogLevel())
	assert.False(t, def.AddSource)
}
