// Package logging wraps zap behind a small package-level API so call sites
// stay as terse as the standard library logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gazetted/internal/config"
)

var sugar = zap.NewNop().Sugar()

// Init builds the process-wide logger from LogConfig. Format "console" yields
// a human-readable development encoder; anything else yields production JSON.
func Init(cfg config.LogConfig) error {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level
	zapCfg.OutputPaths = []string{"stdout"}

	logger, err := zapCfg.Build()
	if err != nil {
		return err
	}
	sugar = logger.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = sugar.Sync()
}

func Debugf(template string, args ...interface{}) {
	sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}
