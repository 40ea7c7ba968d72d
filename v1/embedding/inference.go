package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type InferenceProvider struct {
	baseURL      string
	serviceToken string
	model        string
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	// Remove trailing slash if user added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	return &InferenceProvider{
		baseURL:      base,
		serviceToken: cfg.ServiceToken,
		model:        cfg.Model,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// Create generates embeddings for the given texts using the configured model.
// It uses the OpenAI-compatible /embeddings endpoint.
func (p *InferenceProvider) Create(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("inference: no texts provided")
	}
	if p.model == "" {
		return nil, fmt.Errorf("inference: model is required")
	}

	reqBody := map[string]any{
		"model": p.model,
		"input": texts,
	}

	url := fmt.Sprintf("%s/embeddings", p.baseURL)

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("inference: embeddings empty data")
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}

	return out, nil
}
