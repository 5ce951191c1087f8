package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"adpilot/internal/config/configs"
)

// Storage drivers accepted by the STORAGE variable.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// Storage selects the registry backend: "postgres" or "memory". The
	// memory backend loses all bookkeeping on restart.
	Storage string `env:"STORAGE" envDefault:"postgres"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Gateway configures the external ad platform client.
	Gateway configs.Gateway `envPrefix:"GATEWAY_"`

	// Controller configures the controller timers and floors.
	Controller configs.Controller `envPrefix:"CONTROLLER_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return cfg, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	if cfg.Controller.Concurrency < 1 {
		cfg.Controller.Concurrency = 1
	}
	return cfg, nil
}
