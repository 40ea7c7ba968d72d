package observability

import (
	"context"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
	"github.com/taddeusb90/MemGPT/v1/tracer"
)

// Traced wraps a connector so that every operation runs inside an
// OpenTelemetry span named "<component>.<operation>". Errors are recorded
// on the span and mark it failed.
func Traced(next storage.Connector, t *tracer.Tracer, component string) storage.Connector {
	return &tracedConnector{next: next, tracer: t, component: component}
}

type tracedConnector struct {
	next      storage.Connector
	tracer    *tracer.Tracer
	component string
}

// span opens a span for one operation and returns a closure that finishes
// it, recording err when non-nil.
func (c *tracedConnector) span(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, func(err error)) {
	ctx, span := c.tracer.StartSpan(ctx, c.component+"."+operation)
	if len(attrs) > 0 {
		c.tracer.SetAttributes(span, attrs)
	}

	return ctx, func(err error) {
		if err != nil {
			c.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
	}
}

func (c *tracedConnector) Get(ctx context.Context, id string) (*record.Record, error) {
	ctx, done := c.span(ctx, "get", map[string]interface{}{"record.id": id})
	rec, err := c.next.Get(ctx, id)
	done(err)
	return rec, err
}

func (c *tracedConnector) GetAll(ctx context.Context, filters storage.Filter, limit int) ([]record.Record, error) {
	ctx, done := c.span(ctx, "get_all", map[string]interface{}{"limit": limit})
	recs, err := c.next.GetAll(ctx, filters, limit)
	done(err)
	return recs, err
}

func (c *tracedConnector) GetAllPaginated(ctx context.Context, filters storage.Filter, pageSize int) (storage.Pager, error) {
	ctx, done := c.span(ctx, "get_all_paginated", map[string]interface{}{"page_size": pageSize})
	pager, err := c.next.GetAllPaginated(ctx, filters, pageSize)
	done(err)
	return pager, err
}

func (c *tracedConnector) Insert(ctx context.Context, rec record.Record) error {
	ctx, done := c.span(ctx, "insert", map[string]interface{}{"record.id": rec.ID})
	err := c.next.Insert(ctx, rec)
	done(err)
	return err
}

func (c *tracedConnector) InsertMany(ctx context.Context, recs []record.Record) error {
	ctx, done := c.span(ctx, "insert_many", map[string]interface{}{"record.count": len(recs)})
	err := c.next.InsertMany(ctx, recs)
	done(err)
	return err
}

func (c *tracedConnector) Delete(ctx context.Context, filters storage.Filter) error {
	ctx, done := c.span(ctx, "delete", nil)
	err := c.next.Delete(ctx, filters)
	done(err)
	return err
}

func (c *tracedConnector) Size(ctx context.Context, filters storage.Filter) (int64, error) {
	ctx, done := c.span(ctx, "size", nil)
	n, err := c.next.Size(ctx, filters)
	done(err)
	return n, err
}

func (c *tracedConnector) Query(ctx context.Context, embedding []float32, k int, filters storage.Filter) ([]record.Record, error) {
	ctx, done := c.span(ctx, "query", map[string]interface{}{"top_k": k})
	recs, err := c.next.Query(ctx, embedding, k, filters)
	done(err)
	return recs, err
}

func (c *tracedConnector) QueryByDate(ctx context.Context, start, end int64, k int) ([]record.Record, error) {
	ctx, done := c.span(ctx, "query_by_date", map[string]interface{}{"top_k": k})
	recs, err := c.next.QueryByDate(ctx, start, end, k)
	done(err)
	return recs, err
}

func (c *tracedConnector) QueryByText(ctx context.Context, text string, k int) ([]record.Record, error) {
	ctx, done := c.span(ctx, "query_by_text", map[string]interface{}{"top_k": k})
	recs, err := c.next.QueryByText(ctx, text, k)
	done(err)
	return recs, err
}

func (c *tracedConnector) ListDataSources(ctx context.Context) ([]string, error) {
	ctx, done := c.span(ctx, "list_data_sources", nil)
	sources, err := c.next.ListDataSources(ctx)
	done(err)
	return sources, err
}

func (c *tracedConnector) Save(ctx context.Context) error {
	ctx, done := c.span(ctx, "save", nil)
	err := c.next.Save(ctx)
	done(err)
	return err
}

func (c *tracedConnector) Close() error {
	_, done := c.span(context.Background(), "close", nil)
	err := c.next.Close()
	done(err)
	return err
}
