package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// row is the scan target shared by every read query.
type row struct {
	ID        string
	Text      string
	Embedding pgvector.Vector
	Metadata  []byte
}

// Get returns the record with the given id within the connector's default
// scope, or (nil, nil) when no such record exists.
func (c *Connector) Get(ctx context.Context, id string) (*record.Record, error) {
	match, err := filterJSON(storage.Compose(c.defaults, nil))
	if err != nil {
		return nil, err
	}

	var rows []row
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ? AND metadata @> ?::jsonb", c.columns(), c.table)
	if err := c.db.WithContext(ctx).Raw(query, id, match).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: getting record %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rec, err := c.rowToRecord(rows[0])
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAll returns up to limit records matching the composed filters, ordered
// by id. limit <= 0 returns everything.
func (c *Connector) GetAll(ctx context.Context, filters storage.Filter, limit int) ([]record.Record, error) {
	match, err := filterJSON(storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE metadata @> ?::jsonb ORDER BY id", c.columns(), c.table)
	args := []any{match}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []row
	if err := c.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: listing records: %w", err)
	}
	return c.rowsToRecords(rows)
}

// GetAllPaginated streams matching records in id order, one page per query.
func (c *Connector) GetAllPaginated(ctx context.Context, filters storage.Filter, pageSize int) (storage.Pager, error) {
	match, err := filterJSON(storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}
	return &offsetPager{
		conn:     c,
		match:    match,
		pageSize: c.cfg.Storage.EffectivePageSize(pageSize),
	}, nil
}

// Insert writes one record, overwriting any row with the same id.
func (c *Connector) Insert(ctx context.Context, rec record.Record) error {
	return c.InsertMany(ctx, []record.Record{rec})
}

// InsertMany upserts a batch of records in one transaction.
func (c *Connector) InsertMany(ctx context.Context, recs []record.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows, err := storage.ToRows(recs)
	if err != nil {
		return err
	}
	if c.hasVectors() && rows.Embeddings == nil {
		return fmt.Errorf("postgres: table %s stores embeddings but the batch has none", c.table)
	}
	if !c.hasVectors() && rows.Embeddings != nil {
		return fmt.Errorf("postgres: table %s has no embedding column", c.table)
	}

	upsert := fmt.Sprintf(`INSERT INTO %s (id, text, metadata) VALUES (?, ?, ?::jsonb)
		ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text, metadata = EXCLUDED.metadata`, c.table)
	if c.hasVectors() {
		upsert = fmt.Sprintf(`INSERT INTO %s (id, text, embedding, metadata) VALUES (?, ?, ?, ?::jsonb)
		ON CONFLICT (id) DO UPDATE SET text = EXCLUDED.text, embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata`, c.table)
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < rows.Len(); i++ {
			meta, err := json.Marshal(rows.Metadatas[i])
			if err != nil {
				return fmt.Errorf("postgres: encoding metadata: %w", err)
			}

			args := []any{rows.IDs[i], rows.Documents[i], string(meta)}
			if c.hasVectors() {
				args = []any{rows.IDs[i], rows.Documents[i], pgvector.NewVector(rows.Embeddings[i]), string(meta)}
			}
			if err := tx.Exec(upsert, args...).Error; err != nil {
				return fmt.Errorf("postgres: upserting record %s: %w", rows.IDs[i], err)
			}
		}
		return nil
	})
	return err
}

// Delete removes every row matching the composed filters.
func (c *Connector) Delete(ctx context.Context, filters storage.Filter) error {
	match, err := filterJSON(storage.Compose(c.defaults, filters))
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE metadata @> ?::jsonb", c.table)
	if err := c.db.WithContext(ctx).Exec(query, match).Error; err != nil {
		return fmt.Errorf("postgres: deleting records: %w", err)
	}
	return nil
}

// Size counts rows matching the composed filters.
func (c *Connector) Size(ctx context.Context, filters storage.Filter) (int64, error) {
	match, err := filterJSON(storage.Compose(c.defaults, filters))
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE metadata @> ?::jsonb", c.table)
	if err := c.db.WithContext(ctx).Raw(query, match).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("postgres: counting records: %w", err)
	}
	return count, nil
}

// Query returns the top-k records nearest to the query embedding by cosine
// distance, most similar first.
func (c *Connector) Query(ctx context.Context, embedding []float32, k int, filters storage.Filter) ([]record.Record, error) {
	if !c.hasVectors() {
		return nil, fmt.Errorf("postgres: table %s stores no embeddings", c.table)
	}
	if k <= 0 {
		return nil, nil
	}
	match, err := filterJSON(storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}

	var rows []row
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE metadata @> ?::jsonb ORDER BY embedding <=> ? LIMIT ?",
		c.columns(), c.table)
	if err := c.db.WithContext(ctx).Raw(query, match, pgvector.NewVector(embedding), k).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: querying records: %w", err)
	}
	return c.rowsToRecords(rows)
}

// QueryByDate is not supported by this backend.
func (c *Connector) QueryByDate(ctx context.Context, start, end int64, k int) ([]record.Record, error) {
	return nil, storage.ErrUnsupported
}

// QueryByText is not supported by this backend.
func (c *Connector) QueryByText(ctx context.Context, text string, k int) ([]record.Record, error) {
	return nil, storage.ErrUnsupported
}

// ListDataSources is not supported by this backend.
func (c *Connector) ListDataSources(ctx context.Context) ([]string, error) {
	return nil, storage.ErrUnsupported
}

// Save is a no-op; every write commits immediately.
func (c *Connector) Save(ctx context.Context) error {
	return nil
}

func (c *Connector) columns() string {
	if c.hasVectors() {
		return "id, text, embedding, metadata"
	}
	return "id, text, metadata"
}

// listPage reads one offset page in id order.
func (c *Connector) listPage(ctx context.Context, match string, offset, limit int) ([]record.Record, error) {
	var rows []row
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE metadata @> ?::jsonb ORDER BY id OFFSET ? LIMIT ?",
		c.columns(), c.table)
	if err := c.db.WithContext(ctx).Raw(query, match, offset, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: listing records at offset %d: %w", offset, err)
	}
	return c.rowsToRecords(rows)
}

func (c *Connector) rowsToRecords(rows []row) ([]record.Record, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	recs := make([]record.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := c.rowToRecord(r)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (c *Connector) rowToRecord(r row) (record.Record, error) {
	var meta map[string]any
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &meta); err != nil {
			return record.Record{}, fmt.Errorf("postgres: decoding metadata of %s: %w", r.ID, err)
		}
	}

	rec := record.Record{ID: r.ID, Text: r.Text}
	if c.hasVectors() {
		rec.Embedding = r.Embedding.Slice()
	}
	rec.Metadata = rec.ApplyFieldMetadata(meta)
	return rec, nil
}

// filterJSON encodes a composed filter as the jsonb containment argument.
func filterJSON(composed storage.Filter) (string, error) {
	data, err := json.Marshal(composed)
	if err != nil {
		return "", fmt.Errorf("postgres: encoding filter: %w", err)
	}
	return string(data), nil
}

// offsetPager reads successive offset pages. A short or empty page ends
// the iteration.
type offsetPager struct {
	conn     *Connector
	match    string
	pageSize int
	offset   int
	done     bool
}

func (p *offsetPager) Next(ctx context.Context) ([]record.Record, error) {
	if p.done {
		return nil, nil
	}
	page, err := p.conn.listPage(ctx, p.match, p.offset, p.pageSize)
	if err != nil {
		return nil, err
	}
	p.offset += len(page)
	if len(page) < p.pageSize {
		p.done = true
	}
	if len(page) == 0 {
		return nil, nil
	}
	return page, nil
}
