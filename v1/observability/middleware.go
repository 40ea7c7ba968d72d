package observability

import (
	"context"
	"time"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// Observed wraps a connector so that every operation is reported to the
// observer. The component names the backend and the resource names the
// collection or table the connector is bound to.
func Observed(next storage.Connector, observer Observer, component, resource string) storage.Connector {
	return &observedConnector{
		next:      next,
		observer:  observer,
		component: component,
		resource:  resource,
	}
}

type observedConnector struct {
	next      storage.Connector
	observer  Observer
	component string
	resource  string
}

// observe reports one finished operation. subResource carries the record id
// where one applies, size the record count where one is known.
func (c *observedConnector) observe(operation, subResource string, start time.Time, err error, size int64) {
	c.observer.ObserveOperation(OperationContext{
		Component:   c.component,
		Operation:   operation,
		Resource:    c.resource,
		SubResource: subResource,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}

func (c *observedConnector) Get(ctx context.Context, id string) (*record.Record, error) {
	start := time.Now()
	rec, err := c.next.Get(ctx, id)

	size := int64(0)
	if rec != nil {
		size = 1
	}
	c.observe("get", id, start, err, size)
	return rec, err
}

func (c *observedConnector) GetAll(ctx context.Context, filters storage.Filter, limit int) ([]record.Record, error) {
	start := time.Now()
	recs, err := c.next.GetAll(ctx, filters, limit)
	c.observe("get_all", "", start, err, int64(len(recs)))
	return recs, err
}

func (c *observedConnector) GetAllPaginated(ctx context.Context, filters storage.Filter, pageSize int) (storage.Pager, error) {
	start := time.Now()
	pager, err := c.next.GetAllPaginated(ctx, filters, pageSize)
	c.observe("get_all_paginated", "", start, err, -1)
	if err != nil {
		return nil, err
	}
	return &observedPager{next: pager, conn: c}, nil
}

func (c *observedConnector) Insert(ctx context.Context, rec record.Record) error {
	start := time.Now()
	err := c.next.Insert(ctx, rec)
	c.observe("insert", rec.ID, start, err, 1)
	return err
}

func (c *observedConnector) InsertMany(ctx context.Context, recs []record.Record) error {
	start := time.Now()
	err := c.next.InsertMany(ctx, recs)
	c.observe("insert_many", "", start, err, int64(len(recs)))
	return err
}

func (c *observedConnector) Delete(ctx context.Context, filters storage.Filter) error {
	start := time.Now()
	err := c.next.Delete(ctx, filters)
	c.observe("delete", "", start, err, -1)
	return err
}

func (c *observedConnector) Size(ctx context.Context, filters storage.Filter) (int64, error) {
	start := time.Now()
	n, err := c.next.Size(ctx, filters)
	c.observe("size", "", start, err, -1)
	return n, err
}

func (c *observedConnector) Query(ctx context.Context, embedding []float32, k int, filters storage.Filter) ([]record.Record, error) {
	start := time.Now()
	recs, err := c.next.Query(ctx, embedding, k, filters)
	c.observe("query", "", start, err, int64(len(recs)))
	return recs, err
}

func (c *observedConnector) QueryByDate(ctx context.Context, startUnix, endUnix int64, k int) ([]record.Record, error) {
	start := time.Now()
	recs, err := c.next.QueryByDate(ctx, startUnix, endUnix, k)
	c.observe("query_by_date", "", start, err, int64(len(recs)))
	return recs, err
}

func (c *observedConnector) QueryByText(ctx context.Context, text string, k int) ([]record.Record, error) {
	start := time.Now()
	recs, err := c.next.QueryByText(ctx, text, k)
	c.observe("query_by_text", "", start, err, int64(len(recs)))
	return recs, err
}

func (c *observedConnector) ListDataSources(ctx context.Context) ([]string, error) {
	start := time.Now()
	sources, err := c.next.ListDataSources(ctx)
	c.observe("list_data_sources", "", start, err, int64(len(sources)))
	return sources, err
}

func (c *observedConnector) Save(ctx context.Context) error {
	start := time.Now()
	err := c.next.Save(ctx)
	c.observe("save", "", start, err, -1)
	return err
}

func (c *observedConnector) Close() error {
	start := time.Now()
	err := c.next.Close()
	c.observe("close", "", start, err, -1)
	return err
}

// observedPager reports each page fetch as its own operation.
type observedPager struct {
	next storage.Pager
	conn *observedConnector
}

func (p *observedPager) Next(ctx context.Context) ([]record.Record, error) {
	start := time.Now()
	page, err := p.next.Next(ctx)
	p.conn.observe("next_page", "", start, err, int64(len(page)))
	return page, err
}
