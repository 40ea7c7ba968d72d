package storage

import (
	"fmt"

	"github.com/taddeusb90/MemGPT/v1/record"
)

// Rows is the columnar row form shared by the backends: parallel slices
// keyed by position. Embeddings is nil when no record in the batch carries
// one; otherwise it holds one vector per row.
type Rows struct {
	IDs        []string
	Documents  []string
	Embeddings [][]float32
	Metadatas  []map[string]any
}

// Len returns the number of rows.
func (r Rows) Len() int { return len(r.IDs) }

// ToRows flattens a batch of records into columnar rows.
//
// The declared fields land in metadata via record.FieldMetadata, then caller
// metadata is laid on top after checking it does not shadow a declared key.
// Nil-valued caller entries are dropped. The whole batch is rejected when
// any record violates the reserved-key rule or when embedding presence is
// mixed; nothing partial is ever produced.
func ToRows(recs []record.Record) (Rows, error) {
	rows := Rows{
		IDs:       make([]string, 0, len(recs)),
		Documents: make([]string, 0, len(recs)),
		Metadatas: make([]map[string]any, 0, len(recs)),
	}

	withEmbedding := 0
	for _, rec := range recs {
		if len(rec.Embedding) > 0 {
			withEmbedding++
		}
	}
	if withEmbedding != 0 && withEmbedding != len(recs) {
		return Rows{}, ErrMixedEmbeddings
	}
	if withEmbedding > 0 {
		rows.Embeddings = make([][]float32, 0, len(recs))
	}

	for _, rec := range recs {
		meta := rec.FieldMetadata()
		for key, value := range rec.Metadata {
			// id, text and embedding are excluded from metadata entirely,
			// so callers may not smuggle them in either.
			if record.IsReservedKey(key) || key == "id" || key == "text" || key == "embedding" {
				return Rows{}, fmt.Errorf("record %s key %q: %w", rec.ID, key, ErrReservedMetadataKey)
			}
			if value == nil {
				continue
			}
			meta[key] = value
		}

		rows.IDs = append(rows.IDs, rec.ID)
		rows.Documents = append(rows.Documents, rec.Text)
		rows.Metadatas = append(rows.Metadatas, meta)
		if rows.Embeddings != nil {
			rows.Embeddings = append(rows.Embeddings, rec.Embedding)
		}
	}
	return rows, nil
}

// FromRows rebuilds records from columnar rows. Declared keys move back to
// record fields; the remainder becomes caller metadata.
func FromRows(rows Rows) []record.Record {
	recs := make([]record.Record, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		rec := record.Record{
			ID:   rows.IDs[i],
			Text: rows.Documents[i],
		}
		if rows.Embeddings != nil && i < len(rows.Embeddings) {
			rec.Embedding = rows.Embeddings[i]
		}
		if i < len(rows.Metadatas) {
			rec.Metadata = rec.ApplyFieldMetadata(rows.Metadatas[i])
		}
		recs = append(recs, rec)
	}
	return recs
}
