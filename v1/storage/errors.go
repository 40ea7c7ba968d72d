package storage

import "errors"

// Common storage errors
var (
	// ErrUnsupported is returned by operations a backend does not implement.
	ErrUnsupported = errors.New("storage: operation not supported")

	// ErrWriteFailed is returned when a write reached the backend but was
	// not acknowledged as applied.
	ErrWriteFailed = errors.New("storage: write failed")

	// ErrMixedEmbeddings is returned when a batch mixes records with and
	// without embeddings.
	ErrMixedEmbeddings = errors.New("storage: batch mixes records with and without embeddings")

	// ErrReservedMetadataKey is returned when caller metadata reuses a key
	// owned by the record field mapping.
	ErrReservedMetadataKey = errors.New("storage: metadata uses a reserved key")

	// ErrClosed is returned when the connector has been closed.
	ErrClosed = errors.New("storage: connector is closed")
)

// IsUnsupportedError checks if the error marks an unimplemented operation.
func IsUnsupportedError(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsWriteFailedError checks if the error is an unacknowledged write.
func IsWriteFailedError(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}
