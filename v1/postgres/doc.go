// Package postgres implements the storage.Connector interface on
// PostgreSQL with the pgvector extension, accessed through GORM.
//
// Each record collection is one table: id, text and embedding live in
// columns, everything else in a jsonb metadata column. Composed equality
// filters translate to jsonb containment (@>) and similarity search to the
// pgvector cosine distance operator (<=>).
//
// A collection configured with VectorSize == 0 is created without an
// embedding column and rejects similarity queries; one with VectorSize > 0
// requires an embedding on every inserted record.
package postgres
