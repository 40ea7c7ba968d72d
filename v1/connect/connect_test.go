package connect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

func TestBackendFor(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *storage.Config)
		want    string
		wantErr bool
	}{
		{name: "empty selects chromem", mutate: func(cfg *storage.Config) {}, want: BackendChromem},
		{name: "path selects chromem", mutate: func(cfg *storage.Config) { cfg.Path = "/tmp/db" }, want: BackendChromem},
		{name: "uri selects qdrant", mutate: func(cfg *storage.Config) { cfg.URI = "localhost:6334" }, want: BackendQdrant},
		{name: "dsn selects postgres", mutate: func(cfg *storage.Config) { cfg.DSN = "postgres://localhost/memgpt" }, want: BackendPostgres},
		{
			name: "two inputs is ambiguous",
			mutate: func(cfg *storage.Config) {
				cfg.Path = "/tmp/db"
				cfg.URI = "localhost:6334"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := storage.DefaultConfig()
			tt.mutate(cfg)

			got, err := BackendFor(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackendForNilConfig(t *testing.T) {
	_, err := BackendFor(nil)
	assert.Error(t, err)
}

func TestOpenChromemRoundTrip(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.UserID = "user-1"
	cfg.VectorSize = 3

	conn, err := Open(Params{Storage: cfg})
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	rec := record.NewPassage("user-1", "", "remember this", []float32{1, 0, 0}, "")
	require.NoError(t, conn.Insert(ctx, rec))

	got, err := conn.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Text, got.Text)
}

func TestOpenAmbiguousConfig(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Path = t.TempDir()
	cfg.DSN = "postgres://localhost/memgpt"

	_, err := Open(Params{Storage: cfg})
	assert.Error(t, err)
}
