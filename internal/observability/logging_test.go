package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/levelmetrics/internal/config"
)

func TestNewLogger_LevelGate(t *testing.T) {
	cases := []struct {
		level   string
		format  string
		enabled zapcore.Level
		gated   zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", "json", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", "console", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", "json", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tc := range cases {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			logger, err := NewLogger(config.LoggingConfig{Level: tc.level, Format: tc.format})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
			assert.False(t, logger.Core().Enabled(tc.gated))
		})
	}
}

func TestNewLogger_DefaultsBuild(t *testing.T) {
	logger, err := NewLogger(config.Defaults().Logging)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel), "CLI default keeps stderr quiet below warn")
}

func TestNewLogger_Rejects(t *testing.T) {
	for _, cfg := range []config.LoggingConfig{
		{Level: "trace", Format: "json"},
		{Level: "info", Format: "xml"},
		{Level: "", Format: ""},
	} {
		_, err := NewLogger(cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}
