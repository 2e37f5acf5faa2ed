// FILE: lixenwraith/confstore/validate.go
package confstore

import (
	"fmt"
	"strings"
)

const (
	rootContext      = "root"
	contextSeparator = "->"
	aliasSeparator   = "|"
)

// Validate checks doc against spec and stops at the first violation, which
// is returned as a *SchemaError.
//
// Validate mutates doc: when a key is found under an alias, its value is
// moved to the canonical key. The returned Document is doc itself, so
// callers holding either reference see the canonical layout.
func Validate(spec Spec, doc any) (Document, error) {
	m, ok := asMap(doc)
	if !ok {
		return nil, &SchemaError{
			Kind:     ErrTypeMismatch,
			Key:      rootContext,
			Context:  rootContext,
			Expected: KindMapping,
			Actual:   KindOf(doc),
		}
	}

	if err := validateMap(spec, m, rootContext); err != nil {
		return Document(m), err
	}
	return Document(m), nil
}

// validateMap walks spec in order against m.
func validateMap(spec Spec, m map[string]any, context string) error {
	for _, field := range spec {
		canonical, value, found := resolveKey(m, field.Key)
		if !found {
			return &SchemaError{Kind: ErrMissingKey, Key: field.Key, Context: context}
		}
		if err := validateValue(field, canonical, value, context); err != nil {
			return err
		}
	}
	return nil
}

// resolveKey finds the first alias of key present in m and moves its value
// to the canonical name.
func resolveKey(m map[string]any, key string) (canonical string, value any, found bool) {
	var candidates []string
	for _, name := range strings.Split(key, aliasSeparator) {
		if name != "" {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return key, nil, false
	}
	canonical = candidates[0]

	for _, name := range candidates {
		v, exists := m[name]
		if !exists {
			continue
		}
		if name != canonical {
			m[canonical] = v
			delete(m, name)
		}
		return canonical, v, true
	}
	return canonical, nil, false
}

// validateValue dispatches on the kind of expectation.
func validateValue(field Field, canonical string, value any, context string) error {
	switch want := field.Want.(type) {
	case Predicate:
		if want == nil {
			return &SchemaError{Kind: ErrUnknownExpectedType, Key: field.Key, Context: context, Expected: "nil predicate"}
		}
		if err := callPredicate(want, value); err != nil {
			return &SchemaError{Kind: ErrPredicateFailed, Key: field.Key, Context: context, Err: err}
		}
		return nil

	case NestedSpec:
		nested, ok := asMap(value)
		if !ok {
			return &SchemaError{
				Kind:     ErrTypeMismatch,
				Key:      field.Key,
				Context:  context,
				Expected: KindMapping,
				Actual:   actualKind(value),
			}
		}
		return validateMap(Spec(want), nested, context+contextSeparator+canonical)

	case TypeTag:
		expected, known := NormalizeKind(string(want))
		if !known {
			return &SchemaError{Kind: ErrUnknownExpectedType, Key: field.Key, Context: context, Expected: string(want)}
		}
		if expected == KindAny {
			return nil
		}
		if actual := KindOf(value); actual != expected {
			return &SchemaError{
				Kind:     ErrTypeMismatch,
				Key:      field.Key,
				Context:  context,
				Expected: expected,
				Actual:   actual,
			}
		}
		return nil

	default:
		return &SchemaError{
			Kind:     ErrUnknownExpectedType,
			Key:      field.Key,
			Context:  context,
			Expected: fmt.Sprintf("%T", field.Want),
		}
	}
}

// callPredicate runs fn and turns a panic into an error.
func callPredicate(fn Predicate, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(value)
}

// actualKind is KindOf, with the Go type for mappings that cannot be walked.
func actualKind(v any) string {
	kind := KindOf(v)
	if kind == KindMapping {
		return fmt.Sprintf("%T", v)
	}
	return kind
}

// canonicalName returns the first alias of a key specifier.
func canonicalName(key string) string {
	for _, name := range strings.Split(key, aliasSeparator) {
		if name != "" {
			return name
		}
	}
	return key
}
