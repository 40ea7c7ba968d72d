// Package record defines the persisted record model shared by all storage
// connectors.
//
// A [Record] is one unit of agent memory: text, an optional dense vector
// embedding, an id, a creation time and a small set of typed fields
// (message role, passage source, owner scoping). Which of the typed fields
// are meaningful depends on the [TableType] of the collection the record
// lives in.
//
// Connectors never reflect over a record. The mapping between record fields
// and backend metadata keys is the declared table in fields.go; id, text and
// embedding are the only fields excluded from metadata, and that exclusion
// is explicit and testable.
package record
