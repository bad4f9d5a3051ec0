package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
)

// LogConfig controls how the global logger is built.
type LogConfig struct {
	Level       string
	Development bool
	// OutputPaths defaults to stderr so NDJSON on stdout stays clean.
	OutputPaths []string
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger initializes the global sugared logger.
func InitLogger(lc LogConfig) error {
	cfg := zap.NewProductionConfig()
	if lc.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(lc.Level))
	cfg.OutputPaths = []string{"stderr"}
	if len(lc.OutputPaths) > 0 {
		cfg.OutputPaths = lc.OutputPaths
	}

	z, err := cfg.Build()
	if err != nil {
		return err
	}

	logger = z.Sugar()
	return nil
}

// SetLogger replaces the global logger. Used by tests and embedding programs.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

// L returns the global sugared logger.
// If InitLogger has not been called, it initializes at info level.
func L() *zap.SugaredLogger {
	if logger == nil {
		_ = InitLogger(LogConfig{Level: "info"})
	}
	return logger
}
