package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines logger configuration
type Config struct {
	Level      string // "debug", "info", "warn", "error"
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
}

// New creates a JSON logger that writes only to a rotating file in cfg.Dir.
// We can't use stdout or stderr as they may interfere with native messaging.
// The returned closer flushes and closes the file.
func New(cfg Config) (*zap.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	// Owner-only: the log records picked file paths
	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, cfg.FileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	return NewWithWriter(zapcore.AddSync(rotator), level), rotator, nil
}

// NewWithWriter creates a JSON logger writing to w
func NewWithWriter(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), w, level)
	return zap.New(core, zap.AddCaller())
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}
