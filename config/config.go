/*
config.go - Environment-driven server configuration

PURPOSE:
  Loads server settings from environment variables, with an optional
  .env file for local development.

ENVIRONMENT VARIABLES:
  PORT          HTTP server port (default: 8080)
  STORE_DRIVER  Storage backend: memory | sqlite | postgres (default: sqlite)
  SQLITE_PATH   SQLite database path (default: planner.db)
                Use ":memory:" for an in-memory database
  DATABASE_URL  PostgreSQL connection string (required when STORE_DRIVER=postgres)

SEE ALSO:
  - cmd/server/main.go: Store selection and server startup
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// =============================================================================
// TYPES
// =============================================================================

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port  int
	Store StoreConfig
}

type StoreConfig struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; missing files are fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &Config{
		Port: port,
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", DriverSQLite),
			SQLitePath:  getEnv("SQLITE_PATH", "planner.db"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use memory, sqlite or postgres)", c.Store.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
