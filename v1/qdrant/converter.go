package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/taddeusb90/MemGPT/v1/record"
	"github.com/taddeusb90/MemGPT/v1/storage"
)

// buildFilter translates a composed filter into a Qdrant filter of Must
// conditions. Returns nil for an empty filter and an error for any value
// the backend cannot express, so a constraint is never silently dropped.
func buildFilter(f storage.Filter) (*qdrant.Filter, error) {
	if len(f) == 0 {
		return nil, nil
	}

	conditions := make([]*qdrant.Condition, 0, len(f))
	for key, value := range f {
		cond, err := matchCondition(key, value)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}
	return &qdrant.Filter{Must: conditions}, nil
}

func matchCondition(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v), nil
	case bool:
		return qdrant.NewMatchBool(key, v), nil
	case int:
		return qdrant.NewMatchInt(key, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(key, v), nil
	case float64:
		// Match conditions have no double variant. A degenerate range
		// matches the exact value for both integer and float payloads,
		// which also covers JSON decoding integers as float64.
		return qdrant.NewRange(key, &qdrant.Range{
			Gte: qdrant.PtrOf(v),
			Lte: qdrant.PtrOf(v),
		}), nil
	default:
		return nil, fmt.Errorf("qdrant: filter value for %q has unsupported type %T", key, value)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("qdrant: nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("qdrant: unexpected PointId type: %T", v)
	}
}

// pointToRecord rebuilds a record from a scored point.
func pointToRecord(point *qdrant.ScoredPoint) (record.Record, error) {
	id, err := extractPointID(point.Id)
	if err != nil {
		return record.Record{}, err
	}

	rows := storage.Rows{
		IDs:       []string{id},
		Documents: []string{""},
		Metadatas: []map[string]any{convertPayload(point.Payload)},
	}
	if vec := point.GetVectors().GetVector().GetData(); len(vec) > 0 {
		rows.Embeddings = [][]float32{vec}
	}

	rec := storage.FromRows(rows)[0]
	if text, ok := rec.Metadata[payloadTextKey].(string); ok {
		rec.Text = text
		delete(rec.Metadata, payloadTextKey)
		if len(rec.Metadata) == 0 {
			rec.Metadata = nil
		}
	}
	return rec, nil
}
