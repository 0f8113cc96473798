package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLoggerPresets(t *testing.T) {
	for _, preset := range []string{"", "console", "console-nocolor", "console-notime", "systemd", "production", "development"} {
		logger, err := NewZapLogger(preset, zapcore.DebugLevel)
		if err != nil {
			t.Errorf("NewZapLogger(%q) failed: %v", preset, err)
			continue
		}
		logger.Debug("Built logger", zap.String("preset", preset))
	}
}

func TestNewZapLoggerConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zap.json")
	const cfg = `{"level":"warn","encoding":"json","outputPaths":["stderr"],"errorOutputPaths":["stderr"],"encoderConfig":{"messageKey":"msg"}}`
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	logger, err := NewZapLogger(path, zapcore.DebugLevel)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info level should be disabled by the config file")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Warn level should be enabled by the config file")
	}
}

func TestNewZapLoggerMissingConfigFile(t *testing.T) {
	if _, err := NewZapLogger(filepath.Join(t.TempDir(), "missing.json"), zapcore.InfoLevel); err == nil {
		t.Error("NewZapLogger with a missing config file should fail")
	}
}

