package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Defaults(t *testing.T) {
	log, err := New(&Config{})
	require.NoError(t, err)
	require.NotNil(t, log)

	// Chaining never loses the interface.
	assert.NotNil(t, log.With("key", "value"))
	assert.NotNil(t, log.WithComponent("test"))
}

func TestNew_Encodings(t *testing.T) {
	for _, encoding := range []string{"json", "console"} {
		log, err := New(&Config{Level: "debug", Encoding: encoding})
		require.NoError(t, err, "encoding %q", encoding)
		require.NotNil(t, log)
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, getLogLevel(tt.level), "level %q", tt.level)
	}
}

func TestToZapFields(t *testing.T) {
	fields := toZapFields([]any{"key", "value", "count", 3})
	require.Len(t, fields, 2)
	assert.Equal(t, zap.Any("key", "value"), fields[0])
	assert.Equal(t, zap.Any("count", 3), fields[1])
}

func TestToZapFields_Malformed(t *testing.T) {
	// A trailing key without a value is dropped.
	fields := toZapFields([]any{"key", "value", "dangling"})
	assert.Len(t, fields, 1)

	// Non-string keys are dropped.
	fields = toZapFields([]any{42, "value"})
	assert.Empty(t, fields)

	assert.Nil(t, toZapFields(nil))
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOp()
	log.Debug("ignored")
	log.Info("ignored", "key", "value")
	assert.Same(t, log, log.With("a", 1))
	assert.Same(t, log, log.WithComponent("x"))
}
