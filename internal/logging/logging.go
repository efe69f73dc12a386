// Package logging constructs the single zap.Logger every command shares,
// switching between a human-readable development encoder and a compact
// production encoder based on the requested verbosity.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger. verbose selects zap's development configuration
// (console-encoded, debug level, caller/stack traces on warnings);
// otherwise a JSON-encoded, info-level production configuration is used.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}
