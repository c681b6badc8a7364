package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type EnvConfig struct {
	// server config
	APP_PORT string `env:"APP_PORT" envDefault:"8080"`
	// database config
	DB_DRIVER            string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DB_PATH              string        `env:"DB_PATH" envDefault:"empresa.db"`
	DB_DSN               string        `env:"DB_DSN"`
	DB_HOST              string        `env:"DB_HOST" envDefault:"localhost"`
	DB_PORT              int           `env:"DB_PORT" envDefault:"5432"`
	DB_USER              string        `env:"DB_USER" envDefault:"postgres"`
	DB_PASSWORD          string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DB_NAME              string        `env:"DB_NAME" envDefault:"postgres"`
	DB_SSL_MODE          string        `env:"DB_SSL_MODE" envDefault:"disable"`
	DB_CONN_MAX_LIFETIME time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"20m"`
	DB_MAX_IDLE_CONNS    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DB_MAX_OPEN_CONNS    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	// source data config
	DATA_DIR     string `env:"DATA_DIR" envDefault:"./data"`
	SOURCES_FILE string `env:"SOURCES_FILE"`
	// status value that marks a project as finished in the projects source
	COMPLETED_STATUS string `env:"COMPLETED_STATUS" envDefault:"Concluído"`
	// logger config
	LOG_FILE_PATH string `env:"LOG_FILE_PATH"`
	LOG_LEVEL     string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnvConfig reads an optional .env file and parses the environment.
func LoadEnvConfig(files ...string) (*EnvConfig, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
