// File: lixenwraith/confstore/convenience.go
package confstore

import (
	"strings"
)

// Document is a decoded configuration document.
// Nested mappings are map[string]any and lists are []any. Integers are int64
// and floats are float64; other Go numeric types are accepted by Save but
// reload in these two forms.
type Document map[string]any

// Lookup returns the value at a dot-separated path, e.g. "database.host".
func (d Document) Lookup(path string) (any, bool) {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return map[string]any(d), d != nil
	}

	current := any(map[string]any(d))
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		value, exists := m[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// Set stores value at a dot-separated path, creating intermediate mappings.
// An existing non-mapping segment is replaced by a new mapping.
func (d Document) Set(path string, value any) {
	segments := strings.Split(path, ".")
	current := map[string]any(d)

	// Iterate through segments up to the second-to-last one
	for _, segment := range segments[:len(segments)-1] {
		if next, ok := asMap(current[segment]); ok {
			current = next
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// Delete removes the value at a dot-separated path and reports whether it existed.
func (d Document) Delete(path string) bool {
	segments := strings.Split(path, ".")
	parent := Document(d)
	if len(segments) > 1 {
		v, ok := d.Lookup(strings.Join(segments[:len(segments)-1], "."))
		if !ok {
			return false
		}
		m, ok := asMap(v)
		if !ok {
			return false
		}
		parent = m
	}

	last := segments[len(segments)-1]
	if _, exists := parent[last]; !exists {
		return false
	}
	delete(parent, last)
	return true
}

// Clone returns a deep copy of the document's mappings and lists.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]any(d)).(map[string]any))
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return Document(cloneValue(map[string]any(val)).(map[string]any))
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[k] = cloneValue(child)
		}
		return m
	case []any:
		list := make([]any, len(val))
		for i, child := range val {
			list[i] = cloneValue(child)
		}
		return list
	default:
		return v
	}
}
