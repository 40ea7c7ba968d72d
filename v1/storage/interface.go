package storage

import (
	"context"

	"github.com/taddeusb90/MemGPT/v1/record"
)

//go:generate mockgen -source=interface.go -destination=mock_connector.go -package=storage

// Connector is the backend-independent surface of one record collection.
//
// Read operations apply the connector's default filters merged with the
// caller's; the caller wins on key collisions. A nil filter map means
// "defaults only". Implementations are safe for concurrent use across
// connectors but not within one.
type Connector interface {
	// Get returns the record with the given id, or (nil, nil) when no
	// record matches within the composed filter scope.
	Get(ctx context.Context, id string) (*record.Record, error)

	// GetAll returns up to limit matching records; limit <= 0 means all.
	GetAll(ctx context.Context, filters Filter, limit int) ([]record.Record, error)

	// GetAllPaginated streams matching records in pages of pageSize.
	// pageSize <= 0 falls back to the configured default.
	GetAllPaginated(ctx context.Context, filters Filter, pageSize int) (Pager, error)

	// Insert writes one record, overwriting any record with the same id.
	Insert(ctx context.Context, rec record.Record) error

	// InsertMany writes a batch. Either every record carries an embedding
	// or none does; a mixed batch fails with ErrMixedEmbeddings and
	// nothing is written.
	InsertMany(ctx context.Context, recs []record.Record) error

	// Delete removes every record matching the composed filters.
	Delete(ctx context.Context, filters Filter) error

	// Size counts records matching the composed filters.
	Size(ctx context.Context, filters Filter) (int64, error)

	// Query returns the top-k records nearest to the query embedding,
	// most similar first.
	Query(ctx context.Context, embedding []float32, k int, filters Filter) ([]record.Record, error)

	// QueryByDate is not supported by any backend. Always ErrUnsupported.
	QueryByDate(ctx context.Context, start, end int64, k int) ([]record.Record, error)

	// QueryByText is not supported by any backend. Always ErrUnsupported.
	QueryByText(ctx context.Context, text string, k int) ([]record.Record, error)

	// ListDataSources is not supported by any backend. Always ErrUnsupported.
	ListDataSources(ctx context.Context) ([]string, error)

	// Save flushes pending state. Every current backend persists on write,
	// so this is a no-op kept for interface stability.
	Save(ctx context.Context) error

	// Close releases the backend handle. The connector is unusable after.
	Close() error
}

// Pager yields successive pages from GetAllPaginated.
type Pager interface {
	// Next returns the next page, or (nil, nil) once exhausted. A page
	// shorter than the page size is the final page.
	Next(ctx context.Context) ([]record.Record, error)
}
