package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level, encoding and destination.
type Config struct {
	Level      string // debug|info|warn|error
	Format     string // json|console
	OutputFile string // file path, "stdout" or "stderr"
}

// Logger wraps zap so callers can add names and fields without touching zap config.
type Logger struct {
	*zap.Logger
}

// New builds a zap logger from cfg. An unknown level falls back to info.
func New(cfg Config) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Sampling = nil

	if err := zapConfig.Level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		zapConfig.Encoding = "json"
	}

	out := cfg.OutputFile
	if out == "" {
		out = "stderr"
	}
	if out != "stdout" && out != "stderr" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
	}
	zapConfig.OutputPaths = []string{out}
	zapConfig.ErrorOutputPaths = []string{out}

	l, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{Logger: l}, nil
}

// NewNop discards everything. Handy in tests.
func NewNop() *Logger { return &Logger{Logger: zap.NewNop()} }

// Named adds a new path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
