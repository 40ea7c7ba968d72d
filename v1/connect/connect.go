package connect

import (
	"fmt"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/taddeusb90/MemGPT/v1/chromem"
	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/postgres"
	"github.com/taddeusb90/MemGPT/v1/qdrant"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Backend names returned by BackendFor.
const (
	BackendChromem  = "chromem"
	BackendQdrant   = "qdrant"
	BackendPostgres = "postgres"
)

// Params groups everything Open needs to construct a connector.
type Params struct {
	// Storage selects the backend (see package doc) and scopes it.
	Storage *storage.Config

	// Embedder is used by the chromem backend to embed records stored
	// without vectors. The other backends ignore it.
	Embedder chromemgo.EmbeddingFunc

	// Logger is optional; a nil logger disables connector logging.
	Logger *logger.Logger
}

// BackendFor reports which adapter a config selects, without opening it.
// It fails when more than one backend input is set.
func BackendFor(cfg *storage.Config) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("connect: nil storage config")
	}

	set := 0
	if cfg.Path != "" {
		set++
	}
	if cfg.URI != "" {
		set++
	}
	if cfg.DSN != "" {
		set++
	}
	if set > 1 {
		return "", fmt.Errorf("connect: ambiguous config: set at most one of Path, URI, DSN")
	}

	switch {
	case cfg.URI != "":
		return BackendQdrant, nil
	case cfg.DSN != "":
		return BackendPostgres, nil
	default:
		// A path, or nothing at all, selects the embedded backend.
		return BackendChromem, nil
	}
}

// Open constructs the connector the config selects.
func Open(params Params) (storage.Connector, error) {
	backend, err := BackendFor(params.Storage)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendChromem:
		cfg := chromem.DefaultConfig()
		cfg.Storage = params.Storage
		return chromem.NewConnector(cfg, params.Embedder, params.Logger)

	case BackendQdrant:
		cfg := qdrant.DefaultConfig()
		cfg.Storage = params.Storage
		return qdrant.NewConnector(cfg, params.Logger)

	case BackendPostgres:
		cfg := postgres.DefaultConfig()
		cfg.Storage = params.Storage
		return postgres.NewConnector(cfg, params.Logger)

	default:
		return nil, fmt.Errorf("connect: unsupported backend: %s", backend)
	}
}
