// Package logging sets up the optional debug log file. The TUI owns the
// terminal, so nothing is ever written to stdout or stderr; when logging
// is disabled a no-op logger is returned and callers log unconditionally.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the debug log file.
const (
	maxSizeMB  = 10
	maxBackups = 2
	maxAgeDays = 14
)

// Config controls the debug logger.
type Config struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"`  // empty means the default path under the XDG state dir
	Level   string `koanf:"level"` // "debug", "info", "warn", "error"
}

// DefaultFile returns the default log file path.
func DefaultFile() string {
	return filepath.Join(xdg.StateHome, "riv", "riv.log")
}

// New builds a file logger, or a no-op logger when disabled.
// RIV_DEBUG=1 force-enables logging at debug level.
func New(cfg Config) (*zap.Logger, error) {
	if os.Getenv("RIV_DEBUG") == "1" {
		cfg.Enabled = true
		cfg.Level = "debug"
	}
	if !cfg.Enabled {
		return zap.NewNop(), nil
	}

	file := cfg.File
	if file == "" {
		file = DefaultFile()
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, level)
	return zap.New(core), nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
