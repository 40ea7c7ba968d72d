package chromem

import (
	"fmt"
	"strconv"
)

// chromem stores metadata as map[string]string, so typed values are
// encoded with a one-byte type tag before the value. The tag makes the
// round trip exact: a numeric-looking string comes back as a string
// instead of being re-typed by a parse heuristic.
const (
	tagString = "s:"
	tagInt    = "i:"
	tagFloat  = "f:"
	tagBool   = "b:"
)

// stringifyMeta converts typed row metadata into the tagged string map
// chromem stores.
func stringifyMeta(meta map[string]any) map[string]string {
	if meta == nil {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case string:
			out[k] = tagString + val
		case int:
			out[k] = tagInt + strconv.Itoa(val)
		case int64:
			out[k] = tagInt + strconv.FormatInt(val, 10)
		case float64:
			out[k] = tagFloat + strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = tagBool + strconv.FormatBool(val)
		default:
			out[k] = tagString + fmt.Sprintf("%v", val)
		}
	}
	return out
}

// restoreMeta inverts stringifyMeta.
func restoreMeta(meta map[string]string) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = restoreValue(v)
	}
	return out
}

func restoreValue(s string) any {
	if len(s) < 2 {
		return s
	}
	tag, rest := s[:2], s[2:]
	switch tag {
	case tagString:
		return rest
	case tagInt:
		if i, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return i
		}
	case tagFloat:
		if f, err := strconv.ParseFloat(rest, 64); err == nil {
			return f
		}
	case tagBool:
		if b, err := strconv.ParseBool(rest); err == nil {
			return b
		}
	}
	// Untagged values come from collections written by other tooling;
	// they stay strings.
	return s
}
