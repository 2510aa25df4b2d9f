package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Development(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "")

	log, err := NewLogger()
	assert.NoError(t, err)
	assert.NotNil(t, log)

	log.Sync()
}

func TestNewLogger_Production(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "")

	log, err := NewLogger()
	assert.NoError(t, err)
	assert.NotNil(t, log)

	log.Sync()
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"", zapcore.InfoLevel},
		{"garbage", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, parseLevel(tc.in), "level %q", tc.in)
	}
}
