package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   LoggingConfig
		override  string
		wantLevel zapcore.Level
		wantError bool
	}{
		{name: "Defaults", wantLevel: zapcore.InfoLevel},
		{name: "Console debug", logging: LoggingConfig{Level: "debug", Format: "console"}, wantLevel: zapcore.DebugLevel},
		{name: "Override wins", logging: LoggingConfig{Level: "debug"}, override: "error", wantLevel: zapcore.ErrorLevel},
		{name: "Warning alias", logging: LoggingConfig{Level: "warning", Format: "json"}, wantLevel: zapcore.WarnLevel},
		{name: "Invalid level", logging: LoggingConfig{Level: "verbose"}, wantError: true},
		{name: "Invalid format", logging: LoggingConfig{Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.logging, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("NewLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("level %s should be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("level %s should be disabled", tt.wantLevel-1)
			}
		})
	}
}

func TestNewLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "payment-clauses.log")

	logger, err := NewLogger(LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("written to file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected log output in %s", path)
	}
}
