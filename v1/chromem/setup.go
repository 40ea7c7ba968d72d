package chromem

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Connector serves one record collection from an embedded chromem database.
// It is safe for concurrent reads but callers must serialize writes to the
// same collection.
type Connector struct {
	cfg        Config
	db         *chromem.DB
	collection *chromem.Collection
	embed      chromem.EmbeddingFunc
	defaults   storage.Filter
	log        *logger.Logger
	closed     bool
}

// NewConnector opens (or creates) the database at cfg.Storage.Path and
// get-or-creates the configured collection. An empty path opens an
// in-memory database.
//
// embed generates vectors for records inserted without one. It may be nil
// when every insert carries its own embedding and cfg.Storage.VectorSize is
// set; enumeration then probes with a fixed unit vector instead.
func NewConnector(cfg Config, embed chromem.EmbeddingFunc, log *logger.Logger) (*Connector, error) {
	if cfg.Storage == nil {
		cfg.Storage = storage.DefaultConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}
	if embed == nil && cfg.Storage.VectorSize <= 0 {
		return nil, fmt.Errorf("chromem: neither an embedding function nor a vector size is configured")
	}

	var (
		db  *chromem.DB
		err error
	)
	if cfg.Storage.Path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.Storage.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("chromem: opening database at %s: %w", cfg.Storage.Path, err)
		}
	}

	// chromem falls back to an OpenAI embedder when given a nil func, so a
	// missing embedder must fail loudly instead.
	embedFn := embed
	if embedFn == nil {
		embedFn = func(ctx context.Context, text string) ([]float32, error) {
			return nil, fmt.Errorf("chromem: no embedding function configured")
		}
	}

	name := cfg.Storage.CollectionName()
	collection, err := db.GetOrCreateCollection(name, nil, embedFn)
	if err != nil {
		return nil, fmt.Errorf("chromem: creating collection %s: %w", name, err)
	}

	log.Info("chromem connector ready", nil, map[string]interface{}{
		"collection": name,
		"path":       cfg.Storage.Path,
	})

	return &Connector{
		cfg:        cfg,
		db:         db,
		collection: collection,
		embed:      embed,
		defaults:   cfg.Storage.DefaultFilters(),
		log:        log,
	}, nil
}

// Close releases the database handle. chromem persists on every write, so
// there is nothing to flush.
func (c *Connector) Close() error {
	if c.closed {
		return storage.ErrClosed
	}
	c.closed = true
	c.log.Info("chromem connector closed", nil)
	return nil
}

var _ storage.Connector = (*Connector)(nil)
