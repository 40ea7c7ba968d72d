// Package chromem implements the storage.Connector interface on top of
// chromem-go, an embedded vector database persisted to a local directory.
//
// chromem stores metadata as string maps and has no document-listing
// primitive. The adapter stringifies row metadata on write, restores typed
// values on read and implements listing as a ranked full fetch sorted by
// record ID, with the composed filters applied in process.
//
// Records inserted without embeddings are embedded by the collection's
// EmbeddingFunc, supplied at construction.
package chromem
