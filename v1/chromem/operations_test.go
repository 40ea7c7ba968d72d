package chromem

import (
	"context"
	"hash/fnv"
	"math"
	"testing"
	"time"

	chromemgo "github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// stubEmbedder maps text to a deterministic unit vector so tests never
// reach a real embedding service.
func stubEmbedder(dim int) chromemgo.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		h := fnv.New64a()
		h.Write([]byte(text))
		seed := h.Sum64()

		vec := make([]float32, dim)
		var norm float64
		for i := range vec {
			seed = seed*6364136223846793005 + 1442695040888963407
			vec[i] = float32(seed%1000) + 1
			norm += float64(vec[i]) * float64(vec[i])
		}
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
		return vec, nil
	}
}

func newTestConnector(t *testing.T, table record.TableType, vectorSize int, embed chromemgo.EmbeddingFunc) *Connector {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Storage.Table = table
	cfg.Storage.UserID = "user-1"
	cfg.Storage.AgentID = "agent-1"
	cfg.Storage.VectorSize = vectorSize

	conn, err := NewConnector(cfg, embed, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newPassage(user, text string, embedding []float32) record.Record {
	return record.NewPassage(user, "agent-1", text, embedding, "docs")
}

func TestInsertGetRoundTrip(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	in := newPassage("user-1", "the sky is blue", []float32{1, 0, 0})
	in.Metadata = map[string]any{"topic": "weather", "priority": 2}
	require.NoError(t, conn.Insert(ctx, in))

	got, err := conn.Get(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Text, got.Text)
	assert.Equal(t, in.Embedding, got.Embedding)
	assert.Equal(t, in.CreatedAt, got.CreatedAt)
	assert.Equal(t, in.DataSource, got.DataSource)
	assert.Equal(t, in.UserID, got.UserID)
	assert.Equal(t, "weather", got.Metadata["topic"])
	assert.Equal(t, int64(2), got.Metadata["priority"])
}

func TestNumericLookingStringMetadataStaysString(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	in := newPassage("user-1", "mailing address", []float32{1, 0, 0})
	in.Metadata = map[string]any{"zip": "02134", "version": "2.0"}
	require.NoError(t, conn.Insert(ctx, in))

	got, err := conn.Get(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "02134", got.Metadata["zip"])
	assert.Equal(t, "2.0", got.Metadata["version"])

	recs, err := conn.GetAll(ctx, storage.Filter{"zip": "02134"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, in.ID, recs[0].ID)

	size, err := conn.Size(ctx, storage.Filter{"zip": "02134"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	require.NoError(t, conn.Delete(ctx, storage.Filter{"zip": "02134"}))
	size, err = conn.Size(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestGetAbsentReturnsNilNil(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)

	got, err := conn.Get(context.Background(), record.NewID())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOutsideDefaultScopeReturnsNilNil(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	other := newPassage("user-2", "not yours", []float32{0, 1, 0})
	require.NoError(t, conn.Insert(ctx, other))

	got, err := conn.Get(ctx, other.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDefaultFiltersScopeReads(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	mine := newPassage("user-1", "mine", []float32{1, 0, 0})
	theirs := newPassage("user-2", "theirs", []float32{0, 1, 0})
	require.NoError(t, conn.InsertMany(ctx, []record.Record{mine, theirs}))

	recs, err := conn.GetAll(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, mine.ID, recs[0].ID)

	// A caller filter on the same key overrides the default scope.
	recs, err = conn.GetAll(ctx, storage.Filter{record.KeyUserID: "user-2"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, theirs.ID, recs[0].ID)
}

func TestGetAllLimit(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, conn.Insert(ctx, newPassage("user-1", "text", []float32{1, 0, 0})))
	}

	recs, err := conn.GetAll(ctx, nil, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	recs, err = conn.GetAll(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestPaginationCoversAllWithoutDuplicates(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	inserted := make(map[string]bool)
	for i := 0; i < 7; i++ {
		rec := newPassage("user-1", "page me", []float32{1, 0, 0})
		inserted[rec.ID] = true
		require.NoError(t, conn.Insert(ctx, rec))
	}

	pager, err := conn.GetAllPaginated(ctx, nil, 3)
	require.NoError(t, err)

	var pages [][]record.Record
	seen := make(map[string]bool)
	for {
		page, err := pager.Next(ctx)
		require.NoError(t, err)
		if page == nil {
			break
		}
		pages = append(pages, page)
		for _, rec := range page {
			assert.False(t, seen[rec.ID], "record %s served twice", rec.ID)
			seen[rec.ID] = true
		}
	}

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 3)
	assert.Len(t, pages[1], 3)
	assert.Len(t, pages[2], 1)
	assert.Equal(t, inserted, seen)

	// Exhausted pagers stay exhausted.
	page, err := pager.Next(ctx)
	assert.NoError(t, err)
	assert.Nil(t, page)
}

func TestPaginationEmptyCollection(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)

	pager, err := conn.GetAllPaginated(context.Background(), nil, 3)
	require.NoError(t, err)

	page, err := pager.Next(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, page)
}

func TestSizeCountsComposedFilterMatches(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		rec := newPassage("user-1", "a", []float32{1, 0, 0})
		rec.Metadata = map[string]any{"topic": "weather"}
		require.NoError(t, conn.Insert(ctx, rec))
	}
	rec := newPassage("user-1", "b", []float32{0, 1, 0})
	rec.Metadata = map[string]any{"topic": "sports"}
	require.NoError(t, conn.Insert(ctx, rec))
	require.NoError(t, conn.Insert(ctx, newPassage("user-2", "c", []float32{0, 0, 1})))

	n, err := conn.Size(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = conn.Size(ctx, storage.Filter{"topic": "weather"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestDeleteRemovesOnlyMatching(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	keep := newPassage("user-1", "keep", []float32{1, 0, 0})
	keep.Metadata = map[string]any{"topic": "sports"}
	drop := newPassage("user-1", "drop", []float32{0, 1, 0})
	drop.Metadata = map[string]any{"topic": "weather"}
	foreign := newPassage("user-2", "foreign", []float32{0, 0, 1})
	foreign.Metadata = map[string]any{"topic": "weather"}
	require.NoError(t, conn.InsertMany(ctx, []record.Record{keep, drop, foreign}))

	require.NoError(t, conn.Delete(ctx, storage.Filter{"topic": "weather"}))

	got, err := conn.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = conn.Get(ctx, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// The foreign record sits outside the default scope and survives.
	recs, err := conn.GetAll(ctx, storage.Filter{record.KeyUserID: "user-2"}, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestQueryRanksBySimilarity(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	exact := newPassage("user-1", "exact", []float32{1, 0, 0})
	near := newPassage("user-1", "near", []float32{0.8, 0.6, 0})
	far := newPassage("user-1", "far", []float32{0, 0, 1})
	require.NoError(t, conn.InsertMany(ctx, []record.Record{far, near, exact}))

	recs, err := conn.Query(ctx, []float32{1, 0, 0}, 2, nil)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, exact.ID, recs[0].ID)
	assert.Equal(t, near.ID, recs[1].ID)
}

func TestQueryAppliesComposedFilters(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	mine := newPassage("user-1", "mine", []float32{0.8, 0.6, 0})
	theirs := newPassage("user-2", "theirs", []float32{1, 0, 0})
	require.NoError(t, conn.InsertMany(ctx, []record.Record{mine, theirs}))

	recs, err := conn.Query(ctx, []float32{1, 0, 0}, 5, nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, mine.ID, recs[0].ID)
}

func TestQueryEmptyCollection(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)

	recs, err := conn.Query(context.Background(), []float32{1, 0, 0}, 3, nil)
	assert.NoError(t, err)
	assert.Nil(t, recs)
}

func TestUnsupportedOperations(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	_, err := conn.QueryByDate(ctx, 0, time.Now().Unix(), 5)
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	_, err = conn.QueryByText(ctx, "anything", 5)
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	_, err = conn.ListDataSources(ctx)
	assert.ErrorIs(t, err, storage.ErrUnsupported)
}

func TestSaveIsNoOp(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	assert.NoError(t, conn.Save(context.Background()))
}

func TestInsertManyRejectsMixedBatchAtomically(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	batch := []record.Record{
		newPassage("user-1", "with", []float32{1, 0, 0}),
		newPassage("user-1", "without", nil),
	}
	err := conn.InsertMany(ctx, batch)
	assert.ErrorIs(t, err, storage.ErrMixedEmbeddings)

	n, err := conn.Size(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertRejectsReservedMetadataKey(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)

	rec := newPassage("user-1", "bad", []float32{1, 0, 0})
	rec.Metadata = map[string]any{record.KeyAgentID: "agent-2"}
	err := conn.Insert(context.Background(), rec)
	assert.ErrorIs(t, err, storage.ErrReservedMetadataKey)
}

func TestInsertOverwritesSameID(t *testing.T) {
	conn := newTestConnector(t, record.TableArchivalMemory, 3, nil)
	ctx := context.Background()

	rec := newPassage("user-1", "first", []float32{1, 0, 0})
	require.NoError(t, conn.Insert(ctx, rec))

	rec.Text = "second"
	require.NoError(t, conn.Insert(ctx, rec))

	got, err := conn.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Text)

	n, err := conn.Size(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEmbeddingLessRecordsUseEmbedder(t *testing.T) {
	conn := newTestConnector(t, record.TableMessages, 0, stubEmbedder(4))
	ctx := context.Background()

	msg := record.NewMessage("user-1", "agent-1", "user", "hello there", nil)
	require.NoError(t, conn.Insert(ctx, msg))

	got, err := conn.Get(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello there", got.Text)
	assert.Equal(t, "user", got.Role)
	assert.Len(t, got.Embedding, 4)
}

func TestMessageScopeIncludesAgent(t *testing.T) {
	conn := newTestConnector(t, record.TableMessages, 0, stubEmbedder(4))
	ctx := context.Background()

	mine := record.NewMessage("user-1", "agent-1", "user", "hi", nil)
	otherAgent := record.NewMessage("user-1", "agent-2", "user", "hi", nil)
	require.NoError(t, conn.InsertMany(ctx, []record.Record{mine, otherAgent}))

	recs, err := conn.GetAll(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, mine.ID, recs[0].ID)
}

func TestPersistentPathRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Storage.Path = dir
	cfg.Storage.Table = record.TableArchivalMemory
	cfg.Storage.UserID = "user-1"
	cfg.Storage.AgentID = "agent-1"
	cfg.Storage.VectorSize = 3

	conn, err := NewConnector(cfg, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	rec := newPassage("user-1", "durable", []float32{1, 0, 0})
	require.NoError(t, conn.Insert(ctx, rec))
	require.NoError(t, conn.Close())

	reopened, err := NewConnector(cfg, nil, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "durable", got.Text)
}
