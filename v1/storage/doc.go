// Package storage defines the connector abstraction shared by every record
// store backend.
//
// A Connector holds one agent-scoped collection of records and exposes CRUD,
// offset pagination and embedding similarity search over it. Backends compose
// every read operation from the connector's default filters plus the caller's
// filters; on a key collision the caller wins. All filters are conjunctive
// equality matches.
//
// Operations a backend cannot express return ErrUnsupported, as do the
// operations no backend supports at this layer (QueryByDate, QueryByText,
// ListDataSources).
package storage
