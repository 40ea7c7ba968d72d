package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taddeusb90/MemGPT/v1/logger"
	"github.com/taddeusb90/MemGPT/v1/metrics"
	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
	"github.com/taddeusb90/MemGPT/v1/tracer"
)

// recordingObserver keeps every reported operation for assertions.
type recordingObserver struct {
	ops []OperationContext
}

func (r *recordingObserver) ObserveOperation(op OperationContext) {
	r.ops = append(r.ops, op)
}

func TestObservedReportsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := storage.NewMockConnector(ctrl)

	rec := record.NewPassage("user1", "", "hello", nil, "")
	mock.EXPECT().Get(gomock.Any(), rec.ID).Return(&rec, nil)

	obs := &recordingObserver{}
	conn := Observed(mock, obs, "chromem", "memgpt_passages_user1")

	got, err := conn.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Len(t, obs.ops, 1)
	op := obs.ops[0]
	assert.Equal(t, "chromem", op.Component)
	assert.Equal(t, "get", op.Operation)
	assert.Equal(t, "memgpt_passages_user1", op.Resource)
	assert.Equal(t, rec.ID, op.SubResource)
	assert.NoError(t, op.Error)
	assert.Equal(t, int64(1), op.Size)
}

func TestObservedReportsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := storage.NewMockConnector(ctrl)

	boom := errors.New("connection refused")
	mock.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(boom)

	obs := &recordingObserver{}
	conn := Observed(mock, obs, "qdrant", "memgpt_recall_agent1")

	recs := []record.Record{record.NewPassage("user1", "", "a", nil, ""), record.NewPassage("user1", "", "b", nil, "")}
	err := conn.InsertMany(context.Background(), recs)
	require.ErrorIs(t, err, boom)

	require.Len(t, obs.ops, 1)
	op := obs.ops[0]
	assert.Equal(t, "insert_many", op.Operation)
	assert.ErrorIs(t, op.Error, boom)
	assert.Equal(t, int64(2), op.Size)
}

func TestObservedWrapsPager(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := storage.NewMockConnector(ctrl)
	pager := storage.NewMockPager(ctrl)

	page := []record.Record{record.NewPassage("user1", "", "a", nil, ""), record.NewPassage("user1", "", "b", nil, "")}
	mock.EXPECT().GetAllPaginated(gomock.Any(), gomock.Any(), 2).Return(pager, nil)
	gomock.InOrder(
		pager.EXPECT().Next(gomock.Any()).Return(page, nil),
		pager.EXPECT().Next(gomock.Any()).Return(nil, nil),
	)

	obs := &recordingObserver{}
	conn := Observed(mock, obs, "postgres", "memgpt_archival_user1")

	p, err := conn.GetAllPaginated(context.Background(), nil, 2)
	require.NoError(t, err)

	first, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	last, err := p.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)

	require.Len(t, obs.ops, 3)
	assert.Equal(t, "get_all_paginated", obs.ops[0].Operation)
	assert.Equal(t, "next_page", obs.ops[1].Operation)
	assert.Equal(t, int64(2), obs.ops[1].Size)
	assert.Equal(t, "next_page", obs.ops[2].Operation)
	assert.Equal(t, int64(0), obs.ops[2].Size)
}

func TestMetricsObserverCounts(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})
	obs := NewMetricsObserver(m)

	obs.ObserveOperation(OperationContext{Component: "chromem", Operation: "insert_many", Size: 3})
	obs.ObserveOperation(OperationContext{Component: "chromem", Operation: "insert_many", Size: 2})
	obs.ObserveOperation(OperationContext{Component: "chromem", Operation: "query", Error: errors.New("bad vector")})

	assert.Equal(t, float64(2), testutil.ToFloat64(obs.operations.WithLabelValues("chromem", "insert_many", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(obs.operations.WithLabelValues("chromem", "query", "error")))
	assert.Equal(t, float64(5), testutil.ToFloat64(obs.records.WithLabelValues("chromem", "insert_many")))
}

func TestTracedPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := storage.NewMockConnector(ctrl)

	want := []record.Record{record.NewPassage("user1", "", "hit", nil, "")}
	mock.EXPECT().Query(gomock.Any(), gomock.Any(), 5, gomock.Any()).Return(want, nil)

	boom := errors.New("timeout")
	mock.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(boom)

	tc := tracer.NewClient(tracer.Config{ServiceName: "test"}, logger.NewNop())
	conn := Traced(mock, tc, "qdrant")

	got, err := conn.Query(context.Background(), []float32{1, 0}, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.ErrorIs(t, conn.Delete(context.Background(), nil), boom)
}
