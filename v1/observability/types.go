package observability

import "time"

// OperationContext carries everything an Observer needs to record a single
// storage operation.
type OperationContext struct {
	// Component names the backend, e.g. "chromem", "qdrant", "postgres".
	Component string

	// Operation is the connector method, e.g. "insert_many", "query".
	Operation string

	// Resource is the collection or table the operation ran against.
	Resource string

	// SubResource carries additional context such as a record id.
	SubResource string

	// Duration is the wall-clock time of the operation.
	Duration time.Duration

	// Error is the operation's error, or nil on success.
	Error error

	// Size is the number of records touched, or -1 when unknown.
	Size int64

	// Metadata holds arbitrary extra context for the observer.
	Metadata map[string]interface{}
}

// Observer receives operation reports from instrumented connectors.
type Observer interface {
	ObserveOperation(op OperationContext)
}
