// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger. Debug output is enabled in the
// development environment or when verbose is set.
func New(environment string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose || environment == "development" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.InitialFields = map[string]interface{}{"env": environment}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
