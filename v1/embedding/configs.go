package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /embeddings appended). The provider appends paths automatically,
// so callers only need to supply the host base URL.

type Config struct {
	// Inference endpoint and auth
	Endpoint     string // Base URL of the OpenAI-compatible inference API
	ServiceToken string // Bearer token for the inference service
	Model        string // Embedding model name (default text-embedding-ada-002)
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = "text-embedding-ada-002"
	}

	return &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		Model:        model,
		HTTPTimeoutS: timeout,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	return nil
}
