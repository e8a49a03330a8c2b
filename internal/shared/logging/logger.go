// Package logging builds the zap logger used for diagnostic output.
package logging

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// New builds a logger from cfg. Format "json" selects the production encoder,
// anything else the development console encoder.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, eris.Wrap(err, "logging: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "logging: build logger")
	}
	return logger, nil
}

// Init builds a logger from cfg and installs it as the zap global.
func Init(cfg types.LogConfig) error {
	logger, err := New(cfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
