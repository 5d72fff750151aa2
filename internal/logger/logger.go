// Package logger provides logging utilities for donation-action using the bullets library.
//
// Usage:
//
//	log := logger.NewLogger("debug")
//	log.Debug("Fetching pull request")
//
//	silentLog := logger.NoLogger() // Suppresses all output
package logger

import (
	"os"
	"strings"

	"github.com/sgaunet/bullets"
)

// runnerDebugEnv is set to "1" by GitHub Actions when step debug logging is enabled.
const runnerDebugEnv = "RUNNER_DEBUG"

// ParseLevel maps a level name to a bullets level.
// Unknown names map to info.
func ParseLevel(logLevel string) bullets.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return bullets.DebugLevel
	case "warn", "warning":
		return bullets.WarnLevel
	case "error":
		return bullets.ErrorLevel
	default:
		return bullets.InfoLevel
	}
}

// NewLogger creates a new logger that writes to stdout at the specified level.
// Debug is forced when the runner has step debugging enabled.
func NewLogger(logLevel string) *bullets.Logger {
	level := ParseLevel(logLevel)
	if os.Getenv(runnerDebugEnv) == "1" {
		level = bullets.DebugLevel
	}
	logger := bullets.New(os.Stdout)
	logger.SetLevel(level)
	return logger
}

// NoLogger creates a logger that suppresses all output.
func NoLogger() *bullets.Logger {
	logger := bullets.New(os.Stdout)
	logger.SetLevel(bullets.FatalLevel)
	return logger
}
