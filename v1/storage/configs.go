package storage

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/taddeusb90/MemGPT/v1/record"
)

// DefaultPageSize is the page size used when a caller does not set one.
const DefaultPageSize = 100

// Config holds the settings shared by every backend connector.
//
// Exactly one of Path, URI or DSN selects the backend: Path points a
// file-backed store at a directory, URI addresses a vector database server
// and DSN a SQL database.
//
// Example:
//
//	cfg := storage.DefaultConfig()
//	cfg.URI = "localhost:6334"
//	cfg.UserID = "user-1"
//	cfg.AgentID = "agent-1"
type Config struct {
	// Directory for file-backed stores.
	Path string `yaml:"path" env:"ARCHIVAL_STORAGE_PATH"`

	// host:port of a vector database server.
	URI string `yaml:"uri" env:"ARCHIVAL_STORAGE_URI"`

	// SQL connection string.
	DSN string `yaml:"dsn" env:"ARCHIVAL_STORAGE_DSN"`

	// Owner scope baked into every read and write.
	UserID  string `yaml:"user_id" env:"MEMGPT_USER_ID"`
	AgentID string `yaml:"agent_id" env:"MEMGPT_AGENT_ID"`

	// Table selects which record collection the connector serves.
	Table record.TableType `yaml:"table" env:"MEMGPT_TABLE"`

	// Dimensionality of stored embeddings. Zero means records carry no
	// embeddings and the backend stores payload only.
	VectorSize int `yaml:"vector_size" env:"MEMGPT_VECTOR_SIZE"`

	// Page size for GetAllPaginated and paginated counting.
	PageSize int `yaml:"page_size" env:"MEMGPT_PAGE_SIZE"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Table:    TableDefault,
		PageSize: DefaultPageSize,
	}
}

// TableDefault is the collection served when none is configured.
const TableDefault = record.TableArchivalMemory

// DefaultFilters returns the owner-scoping filters every operation starts
// from. Message collections scope by user and agent; passage collections by
// user only.
func (c *Config) DefaultFilters() Filter {
	f := Filter{record.KeyUserID: c.UserID}
	if c.Table.KindOf() == record.KindMessage {
		f[record.KeyAgentID] = c.AgentID
	}
	return f
}

// CollectionName derives the backend collection name for the configured
// owner scope.
func (c *Config) CollectionName() string {
	name := fmt.Sprintf("memgpt_%s_%s", c.Table, c.AgentID)
	if c.Table.KindOf() == record.KindPassage {
		name = fmt.Sprintf("memgpt_%s_%s", c.Table, c.UserID)
	}
	return sanitizeCollectionName(name)
}

// EffectivePageSize resolves an explicit page size against the configured
// default.
func (c *Config) EffectivePageSize(pageSize int) int {
	if pageSize > 0 {
		return pageSize
	}
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

// ParseHostPort splits a "host:port" URI, tolerating a scheme prefix.
func ParseHostPort(uri string) (string, int, error) {
	trimmed := uri
	if i := strings.Index(trimmed, "://"); i >= 0 {
		trimmed = trimmed[i+3:]
	}
	host, portStr, err := net.SplitHostPort(trimmed)
	if err != nil {
		return "", 0, fmt.Errorf("storage: invalid uri %q: %w", uri, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("storage: invalid port in %q: %w", uri, err)
	}
	return host, port, nil
}

func sanitizeCollectionName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
