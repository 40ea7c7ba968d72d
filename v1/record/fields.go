package record

import "time"

// Metadata keys for the declared record fields. These are reserved: caller
// metadata may not reuse them.
const (
	KeyCreatedAt  = "created_at"
	KeyRole       = "role"
	KeyName       = "name"
	KeyDataSource = "data_source"
	KeyDocID      = "doc_id"
	KeyUserID     = "user_id"
	KeyAgentID    = "agent_id"
)

// ReservedKeys lists every metadata key managed by the field mapping.
// id, text and embedding never appear in metadata at all.
var ReservedKeys = []string{
	KeyCreatedAt,
	KeyRole,
	KeyName,
	KeyDataSource,
	KeyDocID,
	KeyUserID,
	KeyAgentID,
}

// IsReservedKey reports whether a metadata key belongs to the declared
// field mapping.
func IsReservedKey(key string) bool {
	for _, k := range ReservedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// FieldMetadata flattens the declared record fields into a metadata map.
// Zero-valued fields are dropped (the backing stores reject nulls) and
// CreatedAt is serialized as a Unix-seconds integer; no backend in use has
// a native datetime type at this layer.
//
// Caller metadata is not merged here; see storage.ToRows.
func (r Record) FieldMetadata() map[string]any {
	meta := make(map[string]any)
	if !r.CreatedAt.IsZero() {
		meta[KeyCreatedAt] = r.CreatedAt.Unix()
	}
	if r.Role != "" {
		meta[KeyRole] = r.Role
	}
	if r.Name != "" {
		meta[KeyName] = r.Name
	}
	if r.DataSource != "" {
		meta[KeyDataSource] = r.DataSource
	}
	if r.DocID != "" {
		meta[KeyDocID] = r.DocID
	}
	if r.UserID != "" {
		meta[KeyUserID] = r.UserID
	}
	if r.AgentID != "" {
		meta[KeyAgentID] = r.AgentID
	}
	return meta
}

// ApplyFieldMetadata is the inverse of FieldMetadata: it pulls the declared
// keys out of a row metadata map into record fields and returns the
// remaining caller metadata (nil when empty).
//
// created_at tolerates the integer shapes produced by the different
// backends (int64 from typed payloads, float64 from JSON decoding).
func (r *Record) ApplyFieldMetadata(meta map[string]any) map[string]any {
	var rest map[string]any
	for key, value := range meta {
		switch key {
		case KeyCreatedAt:
			if ts, ok := asUnixSeconds(value); ok {
				r.CreatedAt = time.Unix(ts, 0).UTC()
			}
		case KeyRole:
			r.Role = asString(value)
		case KeyName:
			r.Name = asString(value)
		case KeyDataSource:
			r.DataSource = asString(value)
		case KeyDocID:
			r.DocID = asString(value)
		case KeyUserID:
			r.UserID = asString(value)
		case KeyAgentID:
			r.AgentID = asString(value)
		default:
			if rest == nil {
				rest = make(map[string]any)
			}
			rest[key] = value
		}
	}
	return rest
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asUnixSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
