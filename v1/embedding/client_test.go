package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingServer(t *testing.T, vectors map[string][]float32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Model)

		type datum struct {
			Embedding []float32 `json:"embedding"`
		}
		resp := struct {
			Data []datum `json:"data"`
		}{}
		for _, text := range req.Input {
			vec, ok := vectors[text]
			require.True(t, ok, "unexpected input text %q", text)
			resp.Data = append(resp.Data, datum{Embedding: vec})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()

	client, err := NewClient(&Config{
		Endpoint:     endpoint,
		ServiceToken: "test-token",
		Model:        "test-model",
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)
	return client
}

func TestCreateEmbeddings(t *testing.T) {
	srv := newEmbeddingServer(t, map[string][]float32{
		"hello": {1, 0, 0},
		"world": {0, 1, 0},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	vecs, err := client.CreateEmbeddings(context.Background(), []string{"hello", "world"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1, 0}, vecs[1])
}

func TestEmbedQuery(t *testing.T) {
	srv := newEmbeddingServer(t, map[string][]float32{
		"hello": {0.5, 0.5},
	})
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	vec, err := client.EmbedQuery(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, vec)
}

func TestCreateEmbeddingsNoTexts(t *testing.T) {
	srv := newEmbeddingServer(t, nil)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateEmbeddings(context.Background(), nil)
	assert.Error(t, err)
}

func TestCreateEmbeddingsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateEmbeddings(context.Background(), []string{"hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestNewClientInvalidConfig(t *testing.T) {
	_, err := NewClient(&Config{Model: "test-model"})
	assert.Error(t, err)
}
