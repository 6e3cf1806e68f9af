// Package logging builds the service's zap logger.
package logging

import (
	"go.uber.org/zap"
)

const ModeProduction = "production"

// New returns a JSON production logger for mode "production" and a
// human-readable development logger otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	if mode == ModeProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
