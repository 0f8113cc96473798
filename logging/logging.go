// Package logging builds zap loggers from presets or configuration files.
package logging

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger returns a new [*zap.Logger] with the given preset and log level.
//
// The available presets are:
//
//   - "console" (default): Reasonable defaults for production console environments.
//   - "console-nocolor": Same as "console", but without color.
//   - "console-notime": Same as "console", but without timestamps.
//   - "systemd": Reasonable defaults for running as a systemd service. Same as "console", but without color and timestamps.
//   - "production": Zap's built-in production preset.
//   - "development": Zap's built-in development preset.
//
// If the preset is not recognized, it is treated as a path to a JSON configuration file.
//
// The log level does not apply to the "production", "development", or custom presets.
func NewZapLogger(preset string, level zapcore.Level) (*zap.Logger, error) {
	switch preset {
	case "console", "":
		return NewProductionConsoleZapLogger(level, false, false, false)
	case "console-nocolor":
		return NewProductionConsoleZapLogger(level, true, false, false)
	case "console-notime":
		return NewProductionConsoleZapLogger(level, false, true, false)
	case "systemd":
		return NewProductionConsoleZapLogger(level, true, true, false)
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return newZapLoggerFromConfigFile(preset)
	}
}

// NewProductionConsoleZapLogger creates a new [*zap.Logger] with reasonable defaults for production console environments.
func NewProductionConsoleZapLogger(level zapcore.Level, noColor, noTime, addCaller bool) (*zap.Logger, error) {
	cfg := NewProductionConsoleConfig(noColor, noTime)
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableCaller = !addCaller
	return cfg.Build()
}

// NewProductionConsoleConfig returns a new [zap.Config] with reasonable defaults for production console environments.
func NewProductionConsoleConfig(noColor, noTime bool) zap.Config {
	var (
		levelEncoder zapcore.LevelEncoder
		timeKey      string
	)

	if noColor {
		levelEncoder = zapcore.CapitalLevelEncoder
	} else {
		levelEncoder = zapcore.CapitalColorLevelEncoder
	}

	if !noTime {
		timeKey = "T"
	}

	return zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        timeKey,
			LevelKey:       "L",
			NameKey:        "N",
			CallerKey:      "C",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "M",
			StacktraceKey:  "S",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    levelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}

func newZapLoggerFromConfigFile(path string) (*zap.Logger, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zap logger config file: %w", err)
	}

	var cfg zap.Config
	if err = json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse zap logger config file: %w", err)
	}
	return cfg.Build()
}
