package embedding

import "context"

// Provider contract
type Provider interface {
	// Create generates one embedding vector per input text.
	Create(ctx context.Context, texts ...string) ([][]float32, error)
}
