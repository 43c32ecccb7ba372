package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
	"github.com/portfolio-mgmt/pms-wizard/internal/logger"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		env    string
		want   zapcore.Level
	}{
		{"debug console", "debug", "console", "development", zapcore.DebugLevel},
		{"warn json", "warn", "json", "development", zapcore.WarnLevel},
		{"production forces json", "info", "console", "production", zapcore.InfoLevel},
		{"bad level falls back to info", "chatty", "console", "development", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.NewLogger(
				&config.LoggingConfig{Level: tt.level, Format: tt.format},
				&config.AppConfig{Name: "pms", Environment: tt.env},
			)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
			assert.NotNil(t, logger.WithWizard(l, "w-1", 7))
		})
	}
}
