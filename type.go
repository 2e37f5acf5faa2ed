// File: lixenwraith/confstore/type.go
package confstore

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Canonical kind names reported by Validate.
const (
	KindString  = "string"
	KindInteger = "integer"
	KindBoolean = "boolean"
	KindFloat   = "float"
	KindArray   = "array"
	KindMapping = "mapping"
	KindNull    = "null"
	KindAny     = "any"
)

// kindAliases maps accepted type tags to canonical kind names.
var kindAliases = map[string]string{
	"string":  KindString,
	"str":     KindString,
	"int":     KindInteger,
	"integer": KindInteger,
	"bool":    KindBoolean,
	"boolean": KindBoolean,
	"float":   KindFloat,
	"double":  KindFloat,
	"list":    KindArray,
	"array":   KindArray,
	"map":     KindMapping,
	"mapping": KindMapping,
	"object":  KindMapping,
	"null":    KindNull,
	"any":     KindAny,
}

// NormalizeKind returns the canonical kind for a type tag.
// The second return value is false for unknown tags.
func NormalizeKind(tag string) (string, bool) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(tag))]
	return kind, ok
}

// KindOf returns the canonical kind of a document value. Values outside the
// document model report their Go type.
func KindOf(v any) string {
	if v == nil {
		return KindNull
	}

	if n, ok := v.(json.Number); ok {
		if _, isInt := numberValue(n).(int64); isInt {
			return KindInteger
		}
		return KindFloat
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return KindNull
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Slice, reflect.Map:
		// nil slices and maps encode as null
		if rv.IsNil() {
			return KindNull
		}
		if rv.Kind() == reflect.Map {
			return KindMapping
		}
		return KindArray
	case reflect.Array:
		return KindArray
	default:
		return fmt.Sprintf("%T", v)
	}
}

// asMap returns v as a mutable string-keyed mapping when it is one.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	default:
		return nil, false
	}
}
