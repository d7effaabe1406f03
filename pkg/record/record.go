package record

import "strings"

// Record is the open key/value shape of an entity being edited (a student
// profile or a scholarship listing). Keys are stable field names; values are
// primitives, arrays of strings, or arrays of nested objects. The engine only
// interprets the keys an entity schema declares — unknown keys round-trip
// untouched so additive schema evolution never corrupts stored records.
type Record map[string]any

// New returns an empty record.
func New() Record {
	return make(Record)
}

// Clone returns a deep copy of the record. Mutating the copy never affects
// the original, which lets wizard state snapshots stay independent.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = deepCopy(v)
	}
	return out
}

// Merge applies patch over the record with PATCH semantics: every key in
// patch replaces the existing value, keys absent from patch are preserved.
// The receiver is not mutated; a merged copy is returned.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	if out == nil {
		out = make(Record, len(patch))
	}
	for k, v := range patch {
		out[k] = deepCopy(v)
	}
	return out
}

// Filled reports whether a value counts as present for completion purposes:
// non-nil, non-empty after trimming for strings, length > 0 for arrays.
// Numbers and booleans count as filled whenever the key is set.
func Filled(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// Has reports whether the named field is present and filled.
func (r Record) Has(field string) bool {
	if r == nil {
		return false
	}
	value, ok := r[field]
	return ok && Filled(value)
}

// Strings coerces an array-valued field into a []string, accepting both
// []string and []any payloads (the latter is what encoding/json produces).
func (r Record) Strings(field string) []string {
	if r == nil {
		return nil
	}
	switch v := r[field].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case Record:
		return map[string]any(typed.Clone())
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
