package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/csscomposer/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.GetLevel())

	tests := []struct {
		level    log.Level
		logged   []string
		filtered []string
	}{
		{log.LevelDebug, []string{"debug message", "info message", "warn message", "error message"}, nil},
		{log.LevelInfo, []string{"info message", "warn message", "error message"}, []string{"debug message"}},
		{log.LevelWarn, []string{"warn message", "error message"}, []string{"debug message", "info message"}},
		{log.LevelError, []string{"error message"}, []string{"debug message", "info message", "warn message"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf.Reset()
			log.SetLevel(tt.level)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")

			output := buf.String()
			for _, m := range tt.logged {
				assert.Contains(t, output, m)
			}
			for _, m := range tt.filtered {
				assert.NotContains(t, output, m)
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)
	defer log.SetLevel(log.GetLevel())
	log.SetLevel(log.LevelInfo)

	t.Run("Messages include [CSSC] prefix", func(t *testing.T) {
		buf.Reset()
		log.Info("test message")
		assert.Contains(t, buf.String(), "[CSSC]")
		assert.Contains(t, buf.String(), "test message")
	})

	t.Run("Format strings work correctly", func(t *testing.T) {
		buf.Reset()
		log.Info("Processed %d files in %s", 3, "src/")
		assert.Contains(t, buf.String(), "Processed 3 files in src/")
	})

	t.Run("Each log message ends with newline", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1")
		log.Info("message 2")

		lines := strings.Split(buf.String(), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "message 1")
		assert.Contains(t, lines[1], "message 2")
		assert.Empty(t, lines[2])
	})

	t.Run("Messages include level labels", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("debug")
		log.Info("info")
		log.Warn("warn")
		log.Error("error")

		output := buf.String()
		assert.Contains(t, output, "DEBUG:")
		assert.Contains(t, output, "INFO:")
		assert.Contains(t, output, "WARN:")
		assert.Contains(t, output, "ERROR:")
	})
}

func TestSetOutputNil(t *testing.T) {
	log.SetOutput(nil)
	assert.NotPanics(t, func() {
		log.Error("discarded")
		log.Sync()
	})
}

func TestGetLevel(t *testing.T) {
	originalLevel := log.GetLevel()
	defer log.SetLevel(originalLevel)

	log.SetLevel(log.LevelDebug)
	assert.Equal(t, log.LevelDebug, log.GetLevel())
	assert.True(t, log.Enabled(log.LevelDebug))

	log.SetLevel(log.LevelError)
	assert.Equal(t, log.LevelError, log.GetLevel())
	assert.False(t, log.Enabled(log.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
		wantErr  bool
	}{
		{"debug", log.LevelDebug, false},
		{"INFO", log.LevelInfo, false},
		{"", log.LevelInfo, false},
		{"warning", log.LevelWarn, false},
		{" error ", log.LevelError, false},
		{"loud", log.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := log.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}
