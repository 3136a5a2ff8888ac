// Package logging builds the zap logger. The terminal belongs to the panel,
// so log output only ever goes to a file.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	File   string // empty disables logging
}

// New returns a logger writing to cfg.File, or a no-op logger when no file
// is configured.
func New(cfg Config) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return zap.NewNop(), nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var config zap.Config
	if cfg.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.Development = false
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{cfg.File}
	config.ErrorOutputPaths = []string{cfg.File}
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", cfg.File, err)
	}
	return logger, nil
}
