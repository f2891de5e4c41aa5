package bootstrap

import (
	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// SetupLogger installs the process-wide slog logger from config. Source
// locations are only attached outside production.
func SetupLogger(cfg *config.Config) {
	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		!cfg.IsProduction(),
	))

	logger.Info(LogMsgStartingPhonesBot,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"version", cfg.Version)
	logger.Debug(LogMsgConfigurationLoaded,
		"store_driver", cfg.StoreDriver,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"sqlite_path", cfg.SQLitePath,
		"port", cfg.Port)
}
