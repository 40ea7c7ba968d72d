package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Payload key holding the record text. Points have no document field, so
// the text rides in the payload next to the metadata.
const payloadTextKey = "text"

// Get returns the record with the given id within the connector's default
// scope, or (nil, nil) when no such record exists.
func (c *Connector) Get(ctx context.Context, id string) (*record.Record, error) {
	filter, err := buildFilter(storage.Compose(c.defaults, nil))
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &qdrant.Filter{}
	}
	filter.Must = append(filter.Must, qdrant.NewHasID(qdrant.NewID(id)))

	points, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: getting point %s: %w", id, err)
	}
	if len(points) == 0 {
		return nil, nil
	}

	rec, err := pointToRecord(points[0])
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAll returns up to limit records matching the composed filters.
// limit <= 0 returns everything.
func (c *Connector) GetAll(ctx context.Context, filters storage.Filter, limit int) ([]record.Record, error) {
	composed := storage.Compose(c.defaults, filters)
	pageSize := c.cfg.Storage.EffectivePageSize(0)

	var recs []record.Record
	for offset := 0; ; offset += pageSize {
		fetch := pageSize
		if limit > 0 && limit-len(recs) < fetch {
			fetch = limit - len(recs)
		}
		page, err := c.listPage(ctx, composed, offset, fetch)
		if err != nil {
			return nil, err
		}
		recs = append(recs, page...)
		if len(page) < fetch || (limit > 0 && len(recs) >= limit) {
			return recs, nil
		}
	}
}

// GetAllPaginated streams matching records in pages, reading each page from
// the server on demand.
func (c *Connector) GetAllPaginated(ctx context.Context, filters storage.Filter, pageSize int) (storage.Pager, error) {
	return &offsetPager{
		conn:     c,
		composed: storage.Compose(c.defaults, filters),
		pageSize: c.cfg.Storage.EffectivePageSize(pageSize),
	}, nil
}

// Insert writes one record, overwriting any point with the same id.
func (c *Connector) Insert(ctx context.Context, rec record.Record) error {
	return c.InsertMany(ctx, []record.Record{rec})
}

// InsertMany upserts a batch of records. Every record id must be a UUID.
func (c *Connector) InsertMany(ctx context.Context, recs []record.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows, err := storage.ToRows(recs)
	if err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		if _, err := uuid.Parse(rows.IDs[i]); err != nil {
			return fmt.Errorf("qdrant: record id %q is not a UUID: %w", rows.IDs[i], err)
		}

		payload := make(map[string]any, len(rows.Metadatas[i])+1)
		for k, v := range rows.Metadatas[i] {
			payload[k] = v
		}
		payload[payloadTextKey] = rows.Documents[i]

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(rows.IDs[i]),
			Payload: qdrant.NewValueMap(payload),
		}
		if rows.Embeddings != nil {
			points[i].Vectors = qdrant.NewVectors(rows.Embeddings[i]...)
		}
	}

	result, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant: upserting points: %w", err)
	}
	if result.GetStatus() != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("qdrant: upsert status %s: %w", result.GetStatus(), storage.ErrWriteFailed)
	}
	return nil
}

// Delete removes every point matching the composed filters.
func (c *Connector) Delete(ctx context.Context, filters storage.Filter) error {
	filter, err := buildFilter(storage.Compose(c.defaults, filters))
	if err != nil {
		return err
	}
	if filter == nil {
		return fmt.Errorf("qdrant: refusing to delete with an empty filter")
	}

	result, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: filter},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant: deleting points: %w", err)
	}
	if result.GetStatus() != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("qdrant: delete status %s: %w", result.GetStatus(), storage.ErrWriteFailed)
	}
	return nil
}

// Size counts points matching the composed filters with an exact count.
func (c *Connector) Size(ctx context.Context, filters storage.Filter) (int64, error) {
	filter, err := buildFilter(storage.Compose(c.defaults, filters))
	if err != nil {
		return 0, err
	}
	count, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.collection,
		Filter:         filter,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant: counting points: %w", err)
	}
	return int64(count), nil
}

// Query returns the top-k records nearest to the query embedding, most
// similar first.
func (c *Connector) Query(ctx context.Context, embedding []float32, k int, filters storage.Filter) ([]record.Record, error) {
	if k <= 0 {
		return nil, nil
	}

	filter, err := buildFilter(storage.Compose(c.defaults, filters))
	if err != nil {
		return nil, err
	}
	points, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: querying points: %w", err)
	}
	return pointsToRecords(points)
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

// Save is a no-op; upserts are written with Wait set.
func (c *Connector) Save(ctx context.Context) error {
	return nil
}

// listPage reads one offset page of matching points without a query vector.
func (c *Connector) listPage(ctx context.Context, composed storage.Filter, offset, limit int) ([]record.Record, error) {
	filter, err := buildFilter(composed)
	if err != nil {
		return nil, err
	}
	points, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		Offset:         qdrant.PtrOf(uint64(offset)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: listing points at offset %d: %w", offset, err)
	}
	return pointsToRecords(points)
}

func pointsToRecords(points []*qdrant.ScoredPoint) ([]record.Record, error) {
	if len(points) == 0 {
		return nil, nil
	}
	recs := make([]record.Record, 0, len(points))
	for _, point := range points {
		rec, err := pointToRecord(point)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// offsetPager reads successive offset pages from the server. A short or
// empty page ends the iteration.
type offsetPager struct {
	conn     *Connector
	composed storage.Filter
	pageSize int
	offset   int
	done     bool
}

func (p *offsetPager) Next(ctx context.Context) ([]record.Record, error) {
	if p.done {
		return nil, nil
	}
	page, err := p.conn.listPage(ctx, p.composed, p.offset, p.pageSize)
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
