package log_test

import (
	"bytes"
	"testing"

	"bennypowers.dev/utilgen/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.LevelInfo)

	t.Run("info level hides debug", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Debug("rejected candidate %q", "foo")
		log.Info("scanned %d files", 3)
		log.Warn("theme warning")
		log.Error("build failed")

		output := buf.String()
		assert.NotContains(t, output, "rejected candidate")
		assert.Contains(t, output, "[utilgen] scanned 3 files")
		assert.Contains(t, output, "theme warning")
		assert.Contains(t, output, "build failed")
	})

	t.Run("error level only logs errors", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("debug level logs everything", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("debug message")
		assert.Contains(t, buf.String(), "debug message")
		assert.True(t, log.Enabled(log.LevelDebug))
	})
}

func TestEnabledWithoutOutput(t *testing.T) {
	log.SetOutput(nil)
	log.SetLevel(log.LevelDebug)
	defer log.SetLevel(log.LevelInfo)

	assert.False(t, log.Enabled(log.LevelError), "nil output disables logging")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{"", log.LevelInfo},
		{"warning", log.LevelWarn},
		{" error ", log.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := log.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	_, err := log.ParseLevel("loud")
	assert.Error(t, err)
}
