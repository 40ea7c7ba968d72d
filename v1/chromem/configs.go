package chromem

import (
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Config holds settings for the embedded chromem backend.
//
// Example:
//
//	cfg := chromem.DefaultConfig()
//	cfg.Storage.Path = "/var/lib/memgpt/archival"
//	cfg.Storage.UserID = "user-1"
type Config struct {
	// Shared connector settings. Storage.Path is the persistence
	// directory; an empty path opens an in-memory database.
	Storage *storage.Config `yaml:"storage"`

	// Compress enables gzip compression of persisted documents.
	Compress bool `yaml:"compress" env:"CHROMEM_COMPRESS"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Storage:  storage.DefaultConfig(),
		Compress: false,
	}
}
