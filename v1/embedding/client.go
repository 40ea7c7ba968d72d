package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider or InferenceProvider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p}, nil
}

// NewClientWithProvider constructs a Client over an existing provider.
// Useful for tests and for callers that manage provider construction themselves.
func NewClientWithProvider(p Provider) *Client {
	return &Client{provider: p}
}

// CreateEmbeddings executes a single embedding request.
func (c *Client) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	return c.provider.Create(ctx, texts...)
}

// EmbedQuery embeds a single text. Its signature matches the embedding
// function the chromem connector accepts, so a client can be passed there
// directly via client.EmbedQuery.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.provider.Create(ctx, text)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
