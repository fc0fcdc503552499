// Package providers contains dependency injection providers for the QLP server.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/logger"
)

// Version is the build version reported in the OpenAPI document.
// Set with -ldflags "-X github.com/qlpapp/qlp-server/internal/di/providers.Version=...".
var Version = "dev"

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load(os.Args[1:])
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting QLP Server",
		"version", Version,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.App.DataDir,
		"db_driver", cfg.Database.Driver,
	)

	return log, nil
}
