package qdrant

import (
	"context"
	"fmt"
	"slices"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Connector serves one record collection from a remote Qdrant server.
type Connector struct {
	api        *qdrant.Client
	cfg        Config
	collection string
	defaults   storage.Filter
	log        *logger.Logger
	closed     bool
}

// NewConnector parses the configured URI, connects, validates connectivity
// via a health check and ensures the collection exists.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so the health
// check runs immediately to fail fast when the service is unreachable.
func NewConnector(cfg Config, log *logger.Logger) (*Connector, error) {
	if cfg.Storage == nil {
		cfg.Storage = storage.DefaultConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}

	host, port, err := storage.ParseHostPort(cfg.Storage.URI)
	if err != nil {
		return nil, err
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   host,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: initializing client: %w", err)
	}

	c := &Connector{
		api:        api,
		cfg:        cfg,
		collection: cfg.Storage.CollectionName(),
		defaults:   cfg.Storage.DefaultFilters(),
		log:        log,
	}

	if err := c.healthCheck(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout())
	defer cancel()
	if err := c.ensureCollection(ctx); err != nil {
		return nil, err
	}

	log.Info("qdrant connector ready", nil, map[string]interface{}{
		"collection": c.collection,
		"endpoint":   fmt.Sprintf("%s:%d", host, port),
	})
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service. It is
// lightweight and fast, suitable for startup and readiness probes.
func (c *Connector) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.log.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.Title,
		"version": resp.Version,
	})
	return nil
}

// ensureCollection creates the configured collection when missing. Safe to
// call repeatedly. VectorSize == 0 creates a payload-only collection for
// embedding-less tables.
func (c *Connector) ensureCollection(ctx context.Context) error {
	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: listing collections: %w", err)
	}
	if slices.Contains(names, c.collection) {
		return nil
	}

	req := &qdrant.CreateCollection{CollectionName: c.collection}
	if size := c.cfg.Storage.VectorSize; size > 0 {
		req.VectorsConfig = qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(size),
			Distance: qdrant.Distance_Cosine,
		})
	} else {
		req.VectorsConfig = qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{})
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("qdrant: creating collection %s: %w", c.collection, err)
	}
	return nil
}

func (c *Connector) timeout() time.Duration {
	if c.cfg.Timeout > 0 {
		return c.cfg.Timeout
	}
	return 5 * time.Second
}

// Close shuts down the underlying gRPC connection.
func (c *Connector) Close() error {
	if c.closed {
		return storage.ErrClosed
	}
	c.closed = true
	return c.api.Close()
}

var _ storage.Connector = (*Connector)(nil)
