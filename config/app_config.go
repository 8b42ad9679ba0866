package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Path tags carry their full variable name: a bare "PATH" tag would
// make envconfig fall back to the shell's $PATH when the prefixed
// variable is unset, shadowing the defaults.

type DBConfig struct {
	Path string `envconfig:"DATABASE_PATH" default:"storebook.db"`
}

type SessionConfig struct {
	Path string `envconfig:"SESSION_PATH" default:"session.json"`
}

type ExportConfig struct {
	Path string `envconfig:"EXPORT_PATH" default:"financial_report.csv"`
}

type AppConfig struct {
	Env     string `envconfig:"APP_ENV" default:"development"`
	DB      DBConfig
	Session SessionConfig
	Export  ExportConfig
}

// LoadAppConfig reads configuration from the environment, optionally
// seeded from a .env file. A missing .env file is not an error.
func LoadAppConfig(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found or specified, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"db_path", cfg.DB.Path,
		"session_path", cfg.Session.Path,
		"export_path", cfg.Export.Path,
	)
	return &cfg, nil
}
