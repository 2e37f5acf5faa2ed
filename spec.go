// FILE: lixenwraith/confstore/spec.go
package confstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Spec is an ordered list of required keys. Validation visits fields in
// order, so the first violation reported is deterministic.
type Spec []Field

// Field pairs a key specifier with its expectation.
// Key may list aliases separated by "|"; the first one is canonical.
type Field struct {
	Key  string
	Want Expectation
}

// Expectation is one of TypeTag, NestedSpec or Predicate.
type Expectation interface {
	expectation()
}

// TypeTag expects a value of a primitive kind, e.g. "string" or "int".
type TypeTag string

// NestedSpec expects a mapping that itself satisfies the spec.
type NestedSpec Spec

// Predicate validates a value; a non-nil error fails validation.
type Predicate func(value any) error

func (TypeTag) expectation()    {}
func (NestedSpec) expectation() {}
func (Predicate) expectation()  {}

// Type returns a primitive type expectation.
func Type(tag string) Expectation { return TypeTag(tag) }

// Nested returns a nested mapping expectation.
func Nested(spec Spec) Expectation { return NestedSpec(spec) }

// Check returns a predicate expectation.
func Check(fn Predicate) Expectation { return fn }

// Verify adapts a boolean predicate; detail describes the failure.
func Verify(fn func(value any) bool, detail string) Expectation {
	return Predicate(func(value any) error {
		if fn(value) {
			return nil
		}
		return fmt.Errorf("%s", detail)
	})
}

// Keys returns the canonical key of every field.
func (s Spec) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = canonicalName(f.Key)
	}
	return keys
}

// ParseSpec builds a Spec from a JSON object, keeping the key order of the
// source. String values are type tags and objects are nested specs:
//
//	{"db|database": {"host": "string", "port": "int"}, "debug": "bool"}
func ParseSpec(data []byte) (Spec, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	spec, err := parseSpecObject(decoder, "root")
	if err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("parse spec: unexpected data after top-level object")
	}
	return spec, nil
}

func parseSpecObject(decoder *json.Decoder, context string) (Spec, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%s: expected object, got %v", context, tok)
	}

	spec := Spec{}
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string) // object keys are always strings
		if strings.Trim(key, "|") == "" {
			return nil, fmt.Errorf("%s: empty key specifier", context)
		}

		if !decoder.More() {
			return nil, fmt.Errorf("%s: missing value for %q", context, key)
		}
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}

		raw = bytes.TrimSpace(raw)
		switch {
		case len(raw) > 0 && raw[0] == '"':
			var tag string
			if err := json.Unmarshal(raw, &tag); err != nil {
				return nil, err
			}
			spec = append(spec, Field{Key: key, Want: Type(tag)})
		case len(raw) > 0 && raw[0] == '{':
			nested, err := parseSpecObject(json.NewDecoder(bytes.NewReader(raw)), context+contextSeparator+canonicalName(key))
			if err != nil {
				return nil, err
			}
			spec = append(spec, Field{Key: key, Want: Nested(nested)})
		default:
			return nil, fmt.Errorf("%s: value for %q must be a type name or an object", context, key)
		}
	}

	// closing brace
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return spec, nil
}
