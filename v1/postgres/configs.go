package postgres

import (
	"time"

	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Config holds connection settings for the PostgreSQL connector.
//
// Storage.DSN is a standard libpq connection string, e.g.
// "host=localhost port=5432 user=memgpt password=secret dbname=memgpt sslmode=disable".
type Config struct {
	// Shared connector settings; Storage.DSN selects the database.
	Storage *storage.Config `yaml:"storage"`

	// Connection pool parameters. Zero values fall back to defaults.
	MaxOpenConns    int           `yaml:"max_open_conns" env:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"POSTGRES_CONN_MAX_LIFETIME"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Storage:         storage.DefaultConfig(),
		MaxOpenConns:    50,
		MaxIdleConns:    25,
		ConnMaxLifetime: 1 * time.Minute,
	}
}

// FromDSN returns a default config pre-filled with a connection string.
func FromDSN(dsn string) Config {
	cfg := DefaultConfig()
	cfg.Storage.DSN = dsn
	return cfg
}
