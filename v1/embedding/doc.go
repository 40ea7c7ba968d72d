// Package embedding provides a client for OpenAI-compatible embedding
// services.
//
// The client posts to the service's /embeddings endpoint and returns one
// vector per input text. EmbedQuery matches the embedding-function shape
// the embedded vector store expects, so the client can be plugged straight
// into the chromem connector for records stored without caller-supplied
// vectors.
//
// Example:
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	if err != nil {
//	    return err
//	}
//	vecs, err := client.CreateEmbeddings(ctx, []string{"the sky is blue"})
package embedding
