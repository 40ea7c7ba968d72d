package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Connector serves one record collection from a PostgreSQL table.
type Connector struct {
	cfg      Config
	db       *gorm.DB
	table    string
	defaults storage.Filter
	log      *logger.Logger
	closed   bool
}

// NewConnector connects to the database, verifies connectivity with a ping
// and ensures the collection table (and the vector extension, when
// embeddings are configured) exists.
func NewConnector(cfg Config, log *logger.Logger) (*Connector, error) {
	if cfg.Storage == nil {
		cfg.Storage = storage.DefaultConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}

	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	c := &Connector{
		cfg:      cfg,
		db:       db,
		table:    cfg.Storage.CollectionName(),
		defaults: cfg.Storage.DefaultFilters(),
		log:      log,
	}

	if err := c.ensureTable(context.Background()); err != nil {
		return nil, err
	}

	log.Info("postgres connector ready", nil, map[string]interface{}{
		"table": c.table,
	})
	return c, nil
}

// connect opens the GORM connection and configures the pool.
func connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(
		postgres.Open(cfg.Storage.DSN),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("postgres: connecting: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres: getting database instance: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return db, nil
}

// ensureTable creates the collection table if missing. With embeddings
// configured it also installs the pgvector extension.
func (c *Connector) ensureTable(ctx context.Context) error {
	if c.hasVectors() {
		if err := c.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("postgres: installing vector extension: %w", err)
		}
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		text text NOT NULL,
		metadata jsonb NOT NULL DEFAULT '{}'::jsonb
	)`, c.table)
	if c.hasVectors() {
		ddl = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		text text NOT NULL,
		embedding vector(%d) NOT NULL,
		metadata jsonb NOT NULL DEFAULT '{}'::jsonb
	)`, c.table, c.cfg.Storage.VectorSize)
	}

	if err := c.db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("postgres: creating table %s: %w", c.table, err)
	}
	return nil
}

func (c *Connector) hasVectors() bool {
	return c.cfg.Storage.VectorSize > 0
}

// Close closes the underlying connection pool.
func (c *Connector) Close() error {
	if c.closed {
		return storage.ErrClosed
	}
	c.closed = true

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("postgres: getting database instance: %w", err)
	}
	return sqlDB.Close()
}

var _ storage.Connector = (*Connector)(nil)
