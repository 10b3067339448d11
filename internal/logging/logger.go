// Package logging builds the zap logger used across tugas.
//
// The interactive UI owns stdout, so by default entries go to a file next to
// the config instead of the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and destination of log output.
type Config struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string `mapstructure:"level"`
	// File is a path, or "stderr"/"stdout". Empty disables logging.
	File string `mapstructure:"file"`
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return Nop(), nil
	}

	if cfg.File != "stderr" && cfg.File != "stdout" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("logging: create log directory: %w", err)
		}
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         "console",
		EncoderConfig:    encCfg,
		OutputPaths:      []string{cfg.File},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
