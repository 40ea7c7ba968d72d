package storage

// Filter is a conjunctive set of equality constraints on metadata keys.
// Every pair must match for a record to qualify.
type Filter map[string]any

// Compose merges the connector defaults with caller filters. Caller values
// override defaults on the same key. The inputs are never mutated.
func Compose(defaults, caller Filter) Filter {
	out := make(Filter, len(defaults)+len(caller))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range caller {
		out[k] = v
	}
	return out
}

// Matches reports whether a flattened metadata map satisfies every
// constraint in the filter. Numeric values compare by magnitude so an
// int64 written by one backend matches a float64 read back by another.
func (f Filter) Matches(meta map[string]any) bool {
	for key, want := range f {
		got, ok := meta[key]
		if !ok {
			return false
		}
		if !looselyEqual(want, got) {
			return false
		}
	}
	return true
}

func looselyEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
