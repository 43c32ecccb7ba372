// Package logger builds the service's zap logger and the scoped child
// loggers used per request and per wizard session.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/portfolio-mgmt/pms-wizard/internal/config"
)

// NewLogger builds the root logger. Production and the "json" format get
// JSON with ISO8601 timestamps; everything else gets colored console output.
// An unknown level falls back to info.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if strings.EqualFold(cfg.Format, "json") || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	l, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// WithRequest scopes l to one HTTP request.
func WithRequest(l *zap.Logger, method, path, requestID string) *zap.Logger {
	return l.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)
}

// WithWizard scopes l to one wizard session.
func WithWizard(l *zap.Logger, wizardID string, agreementID int64) *zap.Logger {
	return l.With(
		zap.String("wizard_id", wizardID),
		zap.Int64("agreement_id", agreementID),
	)
}
