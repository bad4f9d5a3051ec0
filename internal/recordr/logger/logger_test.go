package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestL_LazyInit(t *testing.T) {
	logger = nil
	if L() == nil {
		t.Fatal("L() returned nil logger")
	}
	if !L().Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger should be enabled at info")
	}
	if L().Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("default logger should not be enabled at debug")
	}
}

func TestInitLogger_Debug(t *testing.T) {
	if err := InitLogger(LogConfig{Level: "debug", Development: true}); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if !L().Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("logger should be enabled at debug")
	}
	logger = nil
}
