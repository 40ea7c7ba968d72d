package qdrant

import (
	"time"

	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Config holds connection and behavior settings for the Qdrant connector.
//
// The server address comes from Storage.URI ("host:port", scheme optional).
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Storage.URI = "localhost:6334"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := qdrant.FromURI("localhost:6334").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Shared connector settings; Storage.URI addresses the server and
	// Storage.VectorSize shapes the collection (0 means payload-only).
	Storage *storage.Config `yaml:"storage"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Storage:            storage.DefaultConfig(),
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// FromURI returns a default config pre-filled with a server address.
func FromURI(uri string) Config {
	cfg := DefaultConfig()
	cfg.Storage.URI = uri
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c Config) WithApiKey(key string) Config {
	c.ApiKey = key
	return c
}

func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

func (c Config) WithCompatibilityCheck(enabled bool) Config {
	c.CheckCompatibility = enabled
	return c
}
