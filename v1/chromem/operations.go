package chromem

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/philippgille/chromem-go"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Text handed to the embedding function when enumeration needs a probe
// vector and the caller did not configure a vector size.
const probeText = "probe"

// Get returns the record with the given id within the connector's default
// scope, or (nil, nil) when no such record exists.
func (c *Connector) Get(ctx context.Context, id string) (*record.Record, error) {
	recs, err := c.fetchAll(ctx, storage.Compose(c.defaults, nil))
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].ID == id {
			rec := recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// GetAll returns up to limit records matching the composed filters, ordered
// by record id. limit <= 0 returns everything.
func (c *Connector) GetAll(ctx context.Context, filters storage.Filter, limit int) ([]record.Record, error) {
	recs, err := c.fetchAll(ctx, storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// GetAllPaginated snapshots the matching records once and serves them in
// pages. Writes made after the call are not reflected in later pages.
func (c *Connector) GetAllPaginated(ctx context.Context, filters storage.Filter, pageSize int) (storage.Pager, error) {
	recs, err := c.fetchAll(ctx, storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}
	return &snapshotPager{recs: recs, pageSize: c.cfg.Storage.EffectivePageSize(pageSize)}, nil
}

// Insert writes one record, overwriting any record with the same id.
func (c *Connector) Insert(ctx context.Context, rec record.Record) error {
	return c.InsertMany(ctx, []record.Record{rec})
}

// InsertMany writes a batch of records. Records without embeddings are
// embedded by the collection's embedding function.
func (c *Connector) InsertMany(ctx context.Context, recs []record.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows, err := storage.ToRows(recs)
	if err != nil {
		return err
	}

	docs := make([]chromem.Document, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		docs[i] = chromem.Document{
			ID:       rows.IDs[i],
			Content:  rows.Documents[i],
			Metadata: stringifyMeta(rows.Metadatas[i]),
		}
		if rows.Embeddings != nil {
			docs[i].Embedding = rows.Embeddings[i]
		}
	}

	if err := c.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("chromem: adding documents: %w", err)
	}
	return nil
}

// Delete removes every record matching the composed filters.
func (c *Connector) Delete(ctx context.Context, filters storage.Filter) error {
	recs, err := c.fetchAll(ctx, storage.Compose(c.defaults, filters))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	if err := c.collection.Delete(ctx, nil, nil, ids...); err != nil {
		return fmt.Errorf("chromem: deleting documents: %w", err)
	}
	return nil
}

// Size counts records matching the composed filters by walking the pages
// and summing their lengths. chromem has no filtered count primitive.
func (c *Connector) Size(ctx context.Context, filters storage.Filter) (int64, error) {
	pager, err := c.GetAllPaginated(ctx, filters, 0)
	if err != nil {
		return 0, err
	}
	var total int64
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return 0, err
		}
		if page == nil {
			return total, nil
		}
		total += int64(len(page))
	}
}

// Query returns the top-k matching records nearest to the query embedding,
// most similar first. Filters are applied after ranking, so the result can
// be shorter than k even when more matching records exist further down.
func (c *Connector) Query(ctx context.Context, embedding []float32, k int, filters storage.Filter) ([]record.Record, error) {
	if k <= 0 {
		return nil, nil
	}
	count := c.collection.Count()
	if count == 0 {
		return nil, nil
	}

	results, err := c.collection.QueryEmbedding(ctx, embedding, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: querying collection: %w", err)
	}

	composed := storage.Compose(c.defaults, filters)
	recs := make([]record.Record, 0, k)
	for _, res := range results {
		meta := restoreMeta(res.Metadata)
		if !composed.Matches(meta) {
			continue
		}
		recs = append(recs, resultToRecord(res, meta))
		if len(recs) == k {
			break
		}
	}
	return recs, nil
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

// Save is a no-op; chromem persists on every write.
func (c *Connector) Save(ctx context.Context) error {
	return nil
}

// fetchAll lists every record matching the filter, ordered by record id.
// chromem cannot enumerate documents, so the listing is a ranked fetch of
// the whole collection with the filter applied in process.
func (c *Connector) fetchAll(ctx context.Context, composed storage.Filter) ([]record.Record, error) {
	count := c.collection.Count()
	if count == 0 {
		return nil, nil
	}

	probe, err := c.probeVector(ctx)
	if err != nil {
		return nil, err
	}
	results, err := c.collection.QueryEmbedding(ctx, probe, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: listing collection: %w", err)
	}

	recs := make([]record.Record, 0, len(results))
	for _, res := range results {
		meta := restoreMeta(res.Metadata)
		if !composed.Matches(meta) {
			continue
		}
		recs = append(recs, resultToRecord(res, meta))
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (c *Connector) probeVector(ctx context.Context) ([]float32, error) {
	if c.embed != nil {
		vec, err := c.embed(ctx, probeText)
		if err != nil {
			return nil, fmt.Errorf("chromem: embedding probe text: %w", err)
		}
		return vec, nil
	}
	dim := c.cfg.Storage.VectorSize
	vec := make([]float32, dim)
	unit := float32(1 / math.Sqrt(float64(dim)))
	for i := range vec {
		vec[i] = unit
	}
	return vec, nil
}

func resultToRecord(res chromem.Result, meta map[string]any) record.Record {
	rec := record.Record{
		ID:        res.ID,
		Text:      res.Content,
		Embedding: res.Embedding,
	}
	rec.Metadata = rec.ApplyFieldMetadata(meta)
	return rec
}

// snapshotPager serves fixed-size slices of one full fetch. Ending on a
// short or empty page signals exhaustion.
type snapshotPager struct {
	recs     []record.Record
	pageSize int
	offset   int
	done     bool
}

func (p *snapshotPager) Next(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.done || p.offset >= len(p.recs) {
		p.done = true
		return nil, nil
	}
	end := p.offset + p.pageSize
	if end >= len(p.recs) {
		end = len(p.recs)
		p.done = true
	}
	page := p.recs[p.offset:end]
	p.offset = end
	return page, nil
}
