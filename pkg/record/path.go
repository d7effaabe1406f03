package record

import (
	"fmt"
	"strconv"
	"strings"
)

// GetPath resolves a dotted path into the record, traversing nested maps and
// numeric slice indices (for example "englishProficiencyTests.0.score").
func (r Record) GetPath(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	// Prefer an exact match for dotted keys stored verbatim.
	if v, ok := r[path]; ok {
		return v, true
	}
	current := any(map[string]any(r))
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// SetPath writes a value using a dotted path, creating intermediate maps as
// needed. Slice segments must reference existing indices; the engine grows
// arrays through explicit add operations, not through path writes.
func (r Record) SetPath(path string, value any) error {
	if r == nil {
		return fmt.Errorf("record: cannot set path on nil record")
	}
	segments := strings.Split(path, ".")
	if len(segments) == 1 {
		r[path] = value
		return nil
	}

	current := any(map[string]any(r))
	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := current.(type) {
		case map[string]any:
			if last {
				node[segment] = value
				return nil
			}
			child, ok := node[segment].(map[string]any)
			if !ok {
				if _, exists := node[segment].([]any); exists {
					current = node[segment]
					continue
				}
				child = make(map[string]any)
				node[segment] = child
			}
			current = child
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return fmt.Errorf("record: expected numeric segment, got %q", segment)
			}
			if idx < 0 || idx >= len(node) {
				return fmt.Errorf("record: index %d out of range in path %q", idx, path)
			}
			if last {
				node[idx] = value
				return nil
			}
			child, ok := node[idx].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[idx] = child
			}
			current = child
		default:
			return fmt.Errorf("record: unexpected container for segment %q", segment)
		}
	}
	return nil
}
