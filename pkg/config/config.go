// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App is the process configuration.
type App struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	Server Server
	Log    Log
	Rates  Rates
	Bank   Bank
}

// Server configures the HTTP shell.
type Server struct {
	Addr         string        `envconfig:"SERVER_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
}

// Log configures the process logger.
type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	Prefix string `envconfig:"LOG_PREFIX" default:"corebank"`
}

// Rates configures the exchange-rate provider.
type Rates struct {
	CacheTTL time.Duration `envconfig:"RATES_CACHE_TTL" default:"5m"`
}

// Bank holds bank-wide operational parameters.
type Bank struct {
	SeedAccounts       bool    `envconfig:"BANK_SEED_ACCOUNTS" default:"true"`
	AnnualInterestRate float64 `envconfig:"BANK_ANNUAL_INTEREST_RATE" default:"5.0"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*App, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
